package server

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/matsen/citetrack/internal/export"
	"github.com/matsen/citetrack/internal/importer"
)

type errorResponse struct {
	Error string `json:"error"`
}

type submitResponse struct {
	Msg      string `json:"msg"`
	Ingested bool   `json:"ingested"`
}

type uploadResponse struct {
	Msg      string   `json:"msg"`
	Ingested int      `json:"ingested"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
}

type topCitedParams struct {
	N int `query:"n" validate:"omitempty,min=1,max=1000"`
}

func (s *Server) registerRoutes() {
	e := s.echo

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	e.POST("/submit-paper", s.submitPaper)
	e.POST("/upload-batch", s.uploadBatch)

	search := e.Group("/search")
	search.GET("/author/:name", s.searchByAuthor)
	search.GET("/citations/:title", s.searchCiters)
	search.GET("/chain/:title", s.searchChain)
	search.GET("/top-cited", s.topCited)

	e.GET("/stats", s.stats)
	e.GET("/visualize", s.visualize)
	e.GET("/visualize.html", s.visualizeHTML)
	e.GET("/visualize.dot", s.visualizeDOT)
}

func (s *Server) submitPaper(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "reading request body"})
	}

	rec, err := importer.DecodeRecord(body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "request body must be a JSON object"})
	}

	ingested := s.ingestor.Ingest(rec)
	return c.JSON(http.StatusCreated, submitResponse{Msg: "Entry added successfully", Ingested: ingested})
}

func (s *Server) uploadBatch(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "missing multipart field \"file\""})
	}

	name, err := sanitizeFilename(fh.Filename)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
	format, err := importer.DetectFormat(name)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	src, err := s.openUpload(fh, name)
	if err != nil {
		s.logger.Error("storing upload", "file", name, "err", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "storing upload failed"})
	}
	defer src.Close()

	parsed, err := importer.Parse(format, src)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	res := s.ingestor.IngestAll(parsed.Records)
	s.logger.Info("Batch upload processed",
		"file", name,
		"ingested", res.Ingested,
		"skipped", res.Skipped+len(parsed.Errors))

	return c.JSON(http.StatusCreated, uploadResponse{
		Msg:      "Batch upload processed",
		Ingested: res.Ingested,
		Skipped:  res.Skipped + len(parsed.Errors),
		Errors:   parsed.ErrorStrings(),
	})
}

// openUpload returns a reader over the uploaded file. When an upload
// directory is configured the file is first copied there and the copy is
// read back.
func (s *Server) openUpload(fh *multipart.FileHeader, name string) (io.ReadCloser, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	if s.cfg.UploadDir == "" {
		return src, nil
	}
	defer src.Close()

	if err := os.MkdirAll(s.cfg.UploadDir, 0755); err != nil {
		return nil, fmt.Errorf("creating upload dir: %w", err)
	}
	path := filepath.Join(s.cfg.UploadDir, name)
	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}
	if err := dst.Close(); err != nil {
		return nil, fmt.Errorf("closing %s: %w", path, err)
	}
	return os.Open(path)
}

// sanitizeFilename strips directory components from a client-supplied
// file name.
func sanitizeFilename(name string) (string, error) {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	base = strings.TrimSpace(base)
	if base == "" || base == "." || base == ".." || base == "/" {
		return "", errors.New("invalid upload file name")
	}
	return base, nil
}

// pathParam returns a path parameter with percent-escapes decoded. Echo
// hands back the raw segment when the request path carried encoded
// slashes.
func pathParam(c echo.Context, name string) string {
	v := c.Param(name)
	if c.Request().URL.RawPath == "" {
		return v
	}
	if unescaped, err := url.PathUnescape(v); err == nil {
		return unescaped
	}
	return v
}

func (s *Server) searchByAuthor(c echo.Context) error {
	return c.JSON(http.StatusOK, s.engine.FindByAuthor(pathParam(c, "name")))
}

func (s *Server) searchCiters(c echo.Context) error {
	return c.JSON(http.StatusOK, s.engine.FindCiters(pathParam(c, "title")))
}

func (s *Server) searchChain(c echo.Context) error {
	return c.JSON(http.StatusOK, s.engine.CitationChain(pathParam(c, "title")))
}

func (s *Server) topCited(c echo.Context) error {
	params := new(topCitedParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "n must be an integer"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "n must be between 1 and 1000"})
	}

	n := params.N
	if n == 0 {
		n = s.cfg.TopN
	}
	return c.JSON(http.StatusOK, s.engine.MostCitedPapers(n))
}

func (s *Server) stats(c echo.Context) error {
	return c.JSON(http.StatusOK, s.engine.Stats())
}

func (s *Server) visualize(c echo.Context) error {
	return c.JSON(http.StatusOK, export.ExportGraph(s.store))
}

func (s *Server) visualizeHTML(c echo.Context) error {
	opts := export.DefaultOptions()
	if layout := c.QueryParam("layout"); layout != "" {
		opts.Layout = layout
	}

	html, err := export.GenerateHTML(export.ExportGraph(s.store), opts)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
	return c.HTML(http.StatusOK, html)
}

func (s *Server) visualizeDOT(c echo.Context) error {
	dot := export.ToDOT(export.ExportGraph(s.store))
	return c.Blob(http.StatusOK, "text/vnd.graphviz; charset=utf-8", []byte(dot))
}
