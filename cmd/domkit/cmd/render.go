package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel"

	"github.com/go-drift/domkit/cmd/domkit/internal/config"
	"github.com/go-drift/domkit/cmd/domkit/internal/telemetry"
	"github.com/go-drift/domkit/pkg/errors"
	"github.com/go-drift/domkit/pkg/grid"
	"github.com/go-drift/domkit/pkg/render"
	dktest "github.com/go-drift/domkit/pkg/testing"
	"github.com/go-drift/domkit/pkg/theme"
)

func init() {
	RegisterCommand(&Command{
		Name:  "render",
		Short: "Render a data grid from JSON rows",
		Long: `Build a data grid from a JSON array of row objects and print the render
tree a browser host would mount.

Columns, the row key and grid options come from domkit.yaml (or --config).
Without configured columns, the keys of the first row become columns.

Flags:
  --rows FILE          JSON row data (required, "-" reads stdin)
  --config FILE        Grid configuration (default: ./domkit.yaml if present)
  --theme FILE         Theme manifest (overrides the config's theme)
  --sort COL[:desc]    Sort by a column; repeat for secondary keys
  --filter COL=QUERY   Fuzzy-filter a column; repeat to combine (AND)
  --select KEY         Select a row by key; repeat for multi-select grids
  --offset PX          Scroll offset of the grid body
  --format tree|json   Output format (default: tree)
  --verbose            Log recovered conditions`,
		Usage: "domkit render --rows FILE [--config FILE] [--theme FILE] [--sort COL[:desc]] [--filter COL=QUERY] [--select KEY] [--offset PX] [--format tree|json]",
		Run:   runRender,
	})
}

type renderOptions struct {
	rows    string
	config  string
	theme   string
	sorts   []string
	filters []string
	selects []string
	offset  float64
	format  string
	verbose bool
}

func parseRenderArgs(args []string) (renderOptions, error) {
	opts := renderOptions{format: "tree"}
	value := func(i *int, flag string) (string, error) {
		if *i+1 >= len(args) {
			return "", fmt.Errorf("%s requires a value", flag)
		}
		*i++
		return args[*i], nil
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		flag, inline, hasInline := strings.Cut(arg, "=")
		if !strings.HasPrefix(flag, "--") {
			return opts, fmt.Errorf("unexpected argument %q", arg)
		}
		if flag == "--verbose" {
			opts.verbose = true
			continue
		}
		v := inline
		if !hasInline {
			var err error
			if v, err = value(&i, flag); err != nil {
				return opts, err
			}
		}
		switch flag {
		case "--rows":
			opts.rows = v
		case "--config":
			opts.config = v
		case "--theme":
			opts.theme = v
		case "--sort":
			opts.sorts = append(opts.sorts, v)
		case "--filter":
			opts.filters = append(opts.filters, v)
		case "--select":
			opts.selects = append(opts.selects, v)
		case "--offset":
			px, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return opts, fmt.Errorf("--offset: %w", err)
			}
			opts.offset = px
		case "--format":
			if v != "tree" && v != "json" {
				return opts, fmt.Errorf("--format must be tree or json, got %q", v)
			}
			opts.format = v
		default:
			return opts, fmt.Errorf("unknown flag %s", flag)
		}
	}
	if opts.rows == "" {
		return opts, fmt.Errorf("--rows is required")
	}
	return opts, nil
}

func runRender(out io.Writer, args []string) error {
	opts, err := parseRenderArgs(args)
	if err != nil {
		return err
	}
	errors.SetHandler(errors.NewLogHandler(opts.verbose))
	defer errors.SetHandler(nil)

	ctx := context.Background()
	shutdown, err := telemetry.Setup(ctx, Version)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer shutdown(ctx)

	ctx, span := otel.Tracer("github.com/go-drift/domkit/cmd/domkit").Start(ctx, "domkit.render")
	defer span.End()

	root, err := renderGrid(ctx, opts)
	if err != nil {
		span.RecordError(err)
		return err
	}

	if opts.format == "json" {
		data, err := dktest.CaptureSnapshot(root).Marshal()
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}
	_, err = fmt.Fprintln(out, render.Dump(root))
	return err
}

func renderGrid(ctx context.Context, opts renderOptions) (*render.Node, error) {
	cfg, err := loadConfig(opts.config)
	if err != nil {
		return nil, err
	}
	themePath := cfg.Theme
	if opts.theme != "" {
		themePath = opts.theme
	}
	th := theme.Default()
	if themePath != "" {
		if th, err = theme.Load(themePath); err != nil {
			return nil, err
		}
	}

	data, err := readRows(opts.rows)
	if err != nil {
		return nil, err
	}
	rows, err := grid.JSONRows(data, cfg.Grid.Rows)
	if err != nil {
		return nil, err
	}

	columns := buildColumns(cfg.Grid, rows)
	g, err := grid.New(columns, grid.JSONKey(cfg.Grid.Key), grid.Options{
		ID:            cfg.Grid.ID,
		MultiSelect:   cfg.Grid.MultiSelect,
		VirtualScroll: cfg.Grid.VirtualScroll,
		Theme:         th,
		RowHeight:     cfg.Grid.RowHeight,
		Overscan:      cfg.Grid.Overscan,
		Viewport:      cfg.Grid.Viewport,
	})
	if err != nil {
		return nil, err
	}
	if widths := cfg.Grid.Widths(); widths != nil {
		lineHeight := cfg.Grid.LineHeight
		if lineHeight <= 0 {
			lineHeight = th.GridRowHeight()
		}
		g.SetRowHeight(grid.TextRowHeight(columns, widths, lineHeight, 0))
	}

	g.Batch(func() {
		g.SetRows(rows)
		for _, s := range opts.sorts {
			col, dir, _ := strings.Cut(s, ":")
			direction := grid.Ascending
			if strings.EqualFold(dir, "desc") {
				direction = grid.Descending
			}
			g.SetSort(col, direction)
		}
		for _, f := range opts.filters {
			col, query, _ := strings.Cut(f, "=")
			g.SetFilterText(col, query)
		}
		for _, key := range opts.selects {
			g.Select(key, grid.Toggle)
		}
		g.Scroll(opts.offset)
	})

	return render.NewProducer(th).ProduceContext(ctx, g.Build())
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	dir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return config.LoadOptional(dir)
}

func readRows(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	return data, nil
}

// buildColumns uses the configured columns, or the keys of the first row in
// document order.
func buildColumns(g config.GridConfig, rows []gjson.Result) []grid.Column[gjson.Result] {
	var columns []grid.Column[gjson.Result]
	for _, c := range g.Columns {
		col := grid.JSONColumn(c.Key, c.Header, c.Path)
		col.Sortable = c.IsSortable()
		columns = append(columns, col)
	}
	if len(columns) > 0 || len(rows) == 0 {
		return columns
	}
	rows[0].ForEach(func(key, _ gjson.Result) bool {
		name := key.String()
		columns = append(columns, grid.JSONColumn(name, name, gjson.Escape(name)))
		return true
	})
	return columns
}
