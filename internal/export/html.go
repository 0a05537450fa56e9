package export

import (
	"bytes"
	"fmt"
	"html/template"
)

// compiledTemplate is parsed at init time to fail fast on template errors.
var compiledTemplate *template.Template

func init() {
	compiledTemplate = template.Must(template.New("graph").Parse(htmlTemplate))
}

// HTMLOptions configures HTML generation.
type HTMLOptions struct {
	Layout string // "force", "circle", or "grid"
	Title  string // page title; defaults to "Citation Graph"
}

// DefaultOptions returns default HTML generation options.
func DefaultOptions() HTMLOptions {
	return HTMLOptions{Layout: "force"}
}

// ValidLayouts lists the supported layout algorithm names.
var ValidLayouts = []string{"force", "circle", "grid"}

// GenerateHTML generates a self-contained HTML page for the graph.
func GenerateHTML(graph *GraphData, opts HTMLOptions) (string, error) {
	if graph == nil {
		return "", fmt.Errorf("graph cannot be nil")
	}

	if err := ValidateLayout(opts.Layout); err != nil {
		return "", err
	}

	if graph.IsEmpty() {
		return emptyHTML, nil
	}

	graphJSON, err := graph.ToCytoscapeJSON()
	if err != nil {
		return "", err
	}

	title := opts.Title
	if title == "" {
		title = "Citation Graph"
	}

	data := templateData{
		Title:     title,
		GraphJSON: template.JS(graphJSON),
		Layout:    layoutToCytoscape(opts.Layout),
	}

	var buf bytes.Buffer
	if err := compiledTemplate.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// ValidateLayout checks if the layout option is valid. The empty string
// selects the force layout.
func ValidateLayout(layout string) error {
	switch layout {
	case "", "force", "circle", "grid":
		return nil
	default:
		return fmt.Errorf("invalid layout %q: must be force, circle, or grid", layout)
	}
}

type templateData struct {
	Title     string
	GraphJSON template.JS
	Layout    string
}

// layoutToCytoscape converts user-facing layout names to Cytoscape.js layouts.
func layoutToCytoscape(layout string) string {
	switch layout {
	case "circle":
		return "circle"
	case "grid":
		return "grid"
	default:
		return "cose"
	}
}

const emptyHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Citation Graph - Empty</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      display: flex;
      justify-content: center;
      align-items: center;
      height: 100vh;
      margin: 0;
      background: #f5f7fa;
    }
    .empty-state { text-align: center; color: #666; }
    .empty-state h2 { margin-bottom: 0.5em; color: #333; }
    .empty-state code { background: #e0e0e0; padding: 2px 6px; border-radius: 3px; }
  </style>
</head>
<body>
  <div class="empty-state">
    <h2>No graph data</h2>
    <p>No papers have been ingested yet.</p>
    <p>Load records with <code>citetrack ingest -i papers.csv</code> or POST to <code>/upload-batch</code></p>
  </div>
</body>
</html>`

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <script src="https://unpkg.com/cytoscape@3/dist/cytoscape.min.js"></script>
  <style>
    * { box-sizing: border-box; }
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      margin: 0;
      background: #f5f7fa;
    }
    #cy { width: 100%; height: 100vh; }
    #legend {
      position: absolute; top: 12px; left: 12px;
      background: white; border: 1px solid #ccc; border-radius: 4px;
      padding: 8px 12px; font-size: 12px;
    }
    #legend span { display: inline-block; width: 10px; height: 10px; margin-right: 6px; }
    #tooltip {
      position: absolute; display: none;
      background: white; border: 1px solid #ccc; border-radius: 4px;
      padding: 8px 12px; box-shadow: 0 2px 8px rgba(0,0,0,0.15);
      max-width: 300px; font-size: 13px; z-index: 1000; pointer-events: none;
    }
    #tooltip .kind { font-size: 10px; text-transform: uppercase; color: #888; margin-bottom: 4px; }
    #tooltip .label { font-weight: bold; }
  </style>
</head>
<body>
  <div id="cy"></div>
  <div id="legend">
    <div><span style="background:#1f497d;border-radius:50%"></span>paper</div>
    <div><span style="background:#f1c40f"></span>author</div>
    <div><span style="background:#27ae60;transform:rotate(45deg)"></span>journal</div>
  </div>
  <div id="tooltip"></div>
  <script>
    (function() {
      const graphData = {{.GraphJSON}};
      const layout = "{{.Layout}}";

      const edgeStyle = function(color) {
        return {
          'line-color': color,
          'target-arrow-color': color,
          'target-arrow-shape': 'triangle',
          'curve-style': 'bezier',
          'width': 2
        };
      };

      const cy = cytoscape({
        container: document.getElementById('cy'),
        elements: graphData,
        style: [
          {
            selector: 'node',
            style: {
              'background-color': '#95A5A6',
              'label': 'data(label)',
              'color': '#333',
              'font-size': '10px',
              'text-valign': 'bottom',
              'text-margin-y': '5px',
              'width': '26px',
              'height': '26px'
            }
          },
          { selector: 'node[kind="paper"]', style: { 'background-color': '#1f497d', 'width': '32px', 'height': '32px' } },
          { selector: 'node[kind="author"]', style: { 'background-color': '#f1c40f', 'shape': 'rectangle' } },
          { selector: 'node[kind="journal"]', style: { 'background-color': '#27ae60', 'shape': 'diamond' } },
          { selector: 'edge', style: edgeStyle('#95A5A6') },
          { selector: 'edge[relation="cites"]', style: edgeStyle('#2c3e50') },
          { selector: 'edge[relation="authored_by"]', style: edgeStyle('#9b59b6') },
          { selector: 'edge[relation="in_journal"]', style: edgeStyle('#2980b9') },
          { selector: 'node.highlighted', style: { 'border-width': 3, 'border-color': '#e74c3c' } },
          { selector: '.dimmed', style: { 'opacity': 0.25 } }
        ],
        layout: {
          name: layout,
          animate: false,
          nodeRepulsion: 8000,
          idealEdgeLength: 120,
          edgeElasticity: 100
        }
      });

      const tooltip = document.getElementById('tooltip');

      function escapeHtml(str) {
        if (!str) return '';
        return String(str).replace(/&/g, '&amp;')
                          .replace(/</g, '&lt;')
                          .replace(/>/g, '&gt;')
                          .replace(/"/g, '&quot;');
      }

      function showTooltip(evt, content) {
        tooltip.innerHTML = content;
        tooltip.style.display = 'block';
        const pos = evt.renderedPosition || evt.position;
        tooltip.style.left = (pos.x + 15) + 'px';
        tooltip.style.top = (pos.y + 15) + 'px';
      }

      cy.on('mouseover', 'node', function(evt) {
        const d = evt.target.data();
        let html = '<div class="kind">' + escapeHtml(d.kind || 'unknown') + '</div>';
        html += '<div class="label">' + escapeHtml(d.label) + '</div>';
        if (d.year) html += '<div>Year: ' + escapeHtml(d.year) + '</div>';
        if (d.kind === 'paper') {
          html += '<div>Cited by: ' + evt.target.incomers('edge[relation="cites"]').length + '</div>';
        }
        showTooltip(evt, html);
      });

      cy.on('mouseover', 'edge', function(evt) {
        const d = evt.target.data();
        showTooltip(evt, '<div class="kind">' + escapeHtml(d.relation) + '</div>' +
          '<div class="label">' + escapeHtml(d.source) + ' &rarr; ' + escapeHtml(d.target) + '</div>');
      });

      cy.on('mouseout', 'node, edge', function() {
        tooltip.style.display = 'none';
      });

      cy.on('tap', 'node', function(evt) {
        cy.elements().removeClass('highlighted dimmed');
        const neighborhood = evt.target.neighborhood().add(evt.target);
        neighborhood.addClass('highlighted');
        cy.elements().not(neighborhood).addClass('dimmed');
      });

      cy.on('tap', function(evt) {
        if (evt.target === cy) {
          cy.elements().removeClass('highlighted dimmed');
        }
      });
    })();
  </script>
</body>
</html>`
