// Command inventoryctl runs listings, exports, bulk edits and uploads
// against a running inventory platform server.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/nppdeals/inventory-platform/internal/bulk"
	"github.com/nppdeals/inventory-platform/internal/catalog"
	"github.com/nppdeals/inventory-platform/internal/export"
	"github.com/nppdeals/inventory-platform/internal/telemetry"
	"github.com/nppdeals/inventory-platform/pkg/inventoryclient"
)

type cliConfig struct {
	ServerURL string `env:"INVENTORY_URL" env-default:"http://localhost:8080"`
	Token     string `env:"INVENTORY_TOKEN"`
	Username  string `env:"INVENTORY_USER"`
	Password  string `env:"INVENTORY_PASSWORD"`
	Timezone  string `env:"EXPORT_TIMEZONE" env-default:"America/New_York"`
}

const usage = `usage: inventoryctl <command> [flags]

commands:
  list       print products matching view filters
  export     download selected products as csv or xlsx
  bulk-edit  set one field on many products
  stock      mark products in or out of stock
  upload     import a .csv or .xlsx file

environment: INVENTORY_URL, INVENTORY_TOKEN or INVENTORY_USER/INVENTORY_PASSWORD
`

var (
	errUsage = errors.New("invalid usage")
	timeNow  = time.Now
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var cfg cliConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := run(ctx, cfg, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg cliConfig, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	client := inventoryclient.New(cfg.ServerURL,
		inventoryclient.WithToken(cfg.Token),
		inventoryclient.WithHTTPClient(&http.Client{Transport: telemetry.Transport(nil)}),
	)

	if cfg.Token == "" && cfg.Username != "" {
		if _, err := client.Login(ctx, cfg.Username, cfg.Password); err != nil {
			return fmt.Errorf("login: %w", err)
		}
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "list":
		return runList(ctx, client, rest, out)
	case "export":
		return runExport(ctx, client, cfg, rest, out)
	case "bulk-edit":
		return runBulkEdit(ctx, client, rest, out)
	case "stock":
		return runStock(ctx, client, rest, out)
	case "upload":
		return runUpload(ctx, client, rest, out)
	}

	return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
}

func runList(ctx context.Context, client *inventoryclient.Client, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	query := fs.String("q", "", "text search on title, ASIN and UPC")
	categories := fs.String("categories", "", "comma separated categories")
	stock := fs.String("stock", "", "all, in_stock, out_of_stock or available")
	sortMode := fs.String("sort", "", "sort mode")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	products, err := client.ListProducts(ctx)
	if err != nil {
		return err
	}

	filter, mode, err := catalog.FilterFromQuery(url.Values{
		"q":          {*query},
		"categories": {*categories},
		"stock":      {*stock},
		"sort":       {*sortMode},
	})
	if err != nil {
		return err
	}

	view, err := catalog.NewEngine().ComputeView(products, filter, mode)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tPRICE\tDEAL\tMOQ\tSTOCK")
	for _, row := range view.Rows {
		moq := ""
		if row.MOQ != nil {
			moq = strconv.FormatInt(*row.MOQ, 10)
		}
		status := "in"
		if row.OutOfStock {
			status = "out"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			row.ID, row.Title, row.Category, money(row.Price.Valid, row.Price.Decimal.StringFixed(2)),
			money(row.Deal.Valid, row.Deal.Decimal.StringFixed(2)), moq, status)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%d products, %d units, value %s\n",
		view.Stats.TotalProducts, view.Stats.TotalUnits, view.Stats.TotalValue.StringFixed(2))

	return nil
}

func money(valid bool, s string) string {
	if !valid {
		return "-"
	}

	return "$" + s
}

func runExport(ctx context.Context, client *inventoryclient.Client, cfg cliConfig, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	ids := fs.String("ids", "", "comma separated product ids")
	columns := fs.String("columns", "", "comma separated column keys; empty uses saved preferences")
	format := fs.String("format", "csv", "csv or xlsx")
	output := fs.String("o", "", "output path; defaults to the server's filename")
	local := fs.Bool("local", false, "render the file locally instead of on the server")
	if err := fs.Parse(args); err != nil || *ids == "" {
		return errUsage
	}

	var (
		data     []byte
		filename string
		err      error
	)

	if *local {
		data, filename, err = exportLocal(ctx, client, cfg.Timezone, splitList(*ids), splitList(*columns), export.Format(*format))
	} else {
		data, filename, err = client.Export(ctx, inventoryclient.ExportRequest{
			IDs:     splitList(*ids),
			Columns: splitList(*columns),
			Format:  *format,
		})
	}
	if err != nil {
		return err
	}

	if *output != "" {
		filename = *output
	}

	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}

	fmt.Fprintf(out, "wrote %s (%d bytes)\n", filename, len(data))

	return nil
}

func exportLocal(ctx context.Context, client *inventoryclient.Client, timezone string, ids, columns []string, format export.Format) ([]byte, string, error) {
	formatter, err := export.NewFormatterForZone(timezone)
	if err != nil {
		return nil, "", err
	}

	products, err := client.ListProducts(ctx)
	if err != nil {
		return nil, "", err
	}

	if len(columns) == 0 {
		columns = export.ColumnKeys()
	}

	data, err := formatter.Export(format, products, ids, columns)
	if err != nil {
		return nil, "", err
	}

	return data, export.Filename(format, timeNow().In(formatter.Location())), nil
}

func runBulkEdit(ctx context.Context, client *inventoryclient.Client, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("bulk-edit", flag.ContinueOnError)
	ids := fs.String("ids", "", "comma separated product ids")
	field := fs.String("field", "", "field key, one of "+strings.Join(bulk.EditableFields(), ", "))
	value := fs.String("value", "", "new value; empty clears the field")
	if err := fs.Parse(args); err != nil || *ids == "" || *field == "" {
		return errUsage
	}

	coordinator, err := loadCoordinator(ctx, client)
	if err != nil {
		return err
	}

	result, err := coordinator.ApplyBulkEdit(ctx, splitList(*ids), *field, *value)
	if err != nil {
		return err
	}

	return writeResult(out, result)
}

func runStock(ctx context.Context, client *inventoryclient.Client, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("stock", flag.ContinueOnError)
	ids := fs.String("ids", "", "comma separated product ids")
	outOfStock := fs.Bool("out", true, "mark out of stock; -out=false marks in stock")
	if err := fs.Parse(args); err != nil || *ids == "" {
		return errUsage
	}

	coordinator, err := loadCoordinator(ctx, client)
	if err != nil {
		return err
	}

	_, result, err := coordinator.ApplyBulkStockChange(ctx, splitList(*ids), *outOfStock)
	if err != nil {
		return err
	}

	return writeResult(out, result)
}

func runUpload(ctx context.Context, client *inventoryclient.Client, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("upload", flag.ContinueOnError)
	path := fs.String("file", "", "spreadsheet to import")
	if err := fs.Parse(args); err != nil || *path == "" {
		return errUsage
	}

	f, err := os.Open(*path)
	if err != nil {
		return err
	}
	defer f.Close()

	summary, err := client.UploadProducts(ctx, filepath.Base(*path), f)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")

	return enc.Encode(summary)
}

func loadCoordinator(ctx context.Context, client *inventoryclient.Client) (*bulk.Coordinator, error) {
	coordinator := bulk.NewCoordinator(client)
	if err := coordinator.Reload(ctx); err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	return coordinator, nil
}

func writeResult(out io.Writer, result bulk.Result) error {
	fmt.Fprintf(out, "%d succeeded, %d failed\n", len(result.Succeeded), len(result.Failed))
	for _, f := range result.Failed {
		fmt.Fprintf(out, "  %s: %s (%s)\n", f.ID, f.Message, f.Kind)
	}

	if result.Reauthenticate {
		return errors.New("session expired, sign in again")
	}

	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}
