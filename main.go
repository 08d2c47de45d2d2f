package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/localgroup-vla/qaplotter/config"
	"github.com/localgroup-vla/qaplotter/model"
	"github.com/localgroup-vla/qaplotter/qa"
	"github.com/localgroup-vla/qaplotter/qa/handlers"
	"github.com/localgroup-vla/qaplotter/qa/obs"
	"github.com/localgroup-vla/qaplotter/qa/parsers"
	"github.com/localgroup-vla/qaplotter/qa/repository"
	"github.com/localgroup-vla/qaplotter/qa/service"
	"github.com/localgroup-vla/qaplotter/qa/shared"
	"github.com/localgroup-vla/qaplotter/qa/spwmap"
	"github.com/localgroup-vla/qaplotter/router"
	"github.com/localgroup-vla/qaplotter/service/db"
	"github.com/localgroup-vla/qaplotter/utils"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const usage = `usage: qaplotter [flags] <mode>

modes:
  fields   print the manifest of every field
  cal      print the manifest of every calibration table
  export   write one table (-field -table -out)
  query    run SQL over the tables of one field (-field, -query or stdin)
  serve    serve the tables over HTTP

flags:
`

// initFlags initializes the command line flags
func initFlags() *model.CommandLineFlags {
	appFlags := defineFlags(flag.CommandLine)
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()
	return appFlags
}

func defineFlags(fs *flag.FlagSet) *model.CommandLineFlags {
	appFlags := &model.CommandLineFlags{}
	appFlags.Config = fs.String("config", "", "Configuration file. Default to none.")
	appFlags.Root = fs.String("root", "", "Pipeline run directory or s3://bucket/prefix. Overrides qa.root.")
	appFlags.Host = fs.String("host", "", "API host. Overrides http.host.")
	appFlags.Port = fs.String("port", "", "API port. Overrides http.port.")
	appFlags.Field = fs.String("field", "", "Field name.")
	appFlags.Table = fs.String("table", "", "Table type tag (amp_time, delay, ...).")
	appFlags.Out = fs.String("out", "", "Output file. Its extension picks the format (.txt, .ndjson, .parquet).")
	appFlags.Where = fs.String("where", "", "Row filter, e.g. 'spw == 2'.")
	appFlags.Sort = fs.String("sort", "", "Comma separated sort columns.")
	appFlags.Corrs = fs.String("corrs", "", "Comma separated correlations to keep. Overrides qa.corrs.")
	appFlags.Query = fs.String("query", "", "SQL query.")
	appFlags.Stdin = fs.Bool("stdin", false, "Read the SQL query from STDIN. Default false")
	appFlags.Format = fs.String("format", "JSONCompact", "Query output format. Default JSONCompact")
	appFlags.FieldNames = fs.String("fieldnames", "", "Write the field names, one per line, to this file.")
	return appFlags
}

var appFlags *model.CommandLineFlags

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func main() {
	appFlags = initFlags()
	if err := run(context.Background(), os.Stdout, flag.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, out io.Writer, mode string) error {
	if err := config.InitConfig(*appFlags.Config); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg := &config.Config.QA
	if *appFlags.Root != "" {
		cfg.Root = *appFlags.Root
	}
	if *appFlags.Corrs != "" {
		cfg.Corrs = strings.Split(*appFlags.Corrs, ",")
	}
	logger, err := utils.SetupLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	aliases := shared.DefaultAliases()
	if cfg.AliasFile != "" {
		aliasCfg, err := config.LoadAliases(cfg.AliasFile)
		if err != nil {
			return fmt.Errorf("failed to load aliases: %w", err)
		}
		aliases = shared.NewAliasTable(aliasCfg)
	}

	s3 := service.S3Config{
		URL:    cfg.S3.URL,
		Key:    cfg.S3.Key,
		Secret: cfg.S3.Secret,
		Region: cfg.S3.Region,
		Secure: cfg.S3.Secure,
	}
	// A run may lack either directory, e.g. a target-only rerun.
	fields, err := service.NewSource(cfg.FieldsLocation(), s3)
	if err != nil {
		logger.Warn("no field exports", "error", err)
		fields = nil
	}
	caltables, err := service.NewSource(cfg.CaltablesLocation(), s3)
	if err != nil {
		logger.Warn("no calibration exports", "error", err)
		caltables = nil
	}
	reader := repository.NewReader(fields, caltables,
		repository.WithAliases(aliases),
		repository.WithMinPartitionBytes(cfg.MinPartitionBytes),
		repository.WithMaxHeaderLines(cfg.MaxHeaderLines),
		repository.WithWorkers(cfg.Workers),
		repository.WithLogger(logger),
	)

	switch mode {
	case "fields":
		return runFields(ctx, out, reader)
	case "cal":
		return runCal(ctx, out, reader)
	case "export":
		return runExport(ctx, reader, cfg.Corrs)
	case "query":
		return runQuery(ctx, out, reader)
	case "serve", "":
		return runServe(reader, cfg)
	}
	flag.Usage()
	return fmt.Errorf("unknown mode %q", mode)
}

func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// newManifest fills the run id, observation and observing log link.
func newManifest(logger *slog.Logger, vis string) *model.Manifest {
	m := &model.Manifest{Run: uuid.NewString(), Vis: vis}
	if vis == "" {
		return m
	}
	url, err := obs.ObsLogURL(vis)
	if err != nil {
		logger.Debug("no observing log link", "vis", vis, "error", err)
		return m
	}
	m.ObsLog = url
	return m
}

func runFields(ctx context.Context, out io.Writer, reader *repository.Reader) error {
	discovered, err := reader.ListFields(ctx)
	if err != nil {
		return err
	}
	if *appFlags.FieldNames != "" {
		if err := writeFieldNames(*appFlags.FieldNames, discovered); err != nil {
			return err
		}
	}
	names := discovered
	if *appFlags.Field != "" {
		names = []string{*appFlags.Field}
	}
	collections, err := reader.ReadAllFields(ctx, names)
	if err != nil {
		return err
	}
	var vis string
	summaries := make([]model.FieldSummary, 0, len(names))
	for _, name := range names {
		c, ok := collections[name]
		if !ok || len(c.Tables) == 0 {
			continue
		}
		s := handlers.SummarizeField(c)
		if vis == "" {
			vis = s.Vis
		}
		summaries = append(summaries, s)
	}
	m := newManifest(reader.Logger(), vis)
	m.Fields = summaries
	return printJSON(out, m)
}

// writeFieldNames writes every discovered field, with or without tables.
func writeFieldNames(path string, names []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	for _, name := range names {
		fmt.Fprintln(w, name)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func runCal(ctx context.Context, out io.Writer, reader *repository.Reader) error {
	all, err := reader.ReadAllCalTables(ctx)
	if err != nil {
		return err
	}
	var vis string
	summaries := make([]model.CalSummary, 0, len(all))
	for _, kind := range shared.CalKinds {
		c, ok := all[kind]
		if !ok || len(c.Tables) == 0 {
			continue
		}
		s := handlers.SummarizeCal(c)
		if vis == "" {
			vis = s.Vis
		}
		summaries = append(summaries, s)
	}
	m := newManifest(reader.Logger(), vis)
	m.CalTables = summaries
	return printJSON(out, m)
}

func runExport(ctx context.Context, reader *repository.Reader, corrs []string) error {
	if *appFlags.Table == "" || *appFlags.Out == "" {
		return errors.New("export needs -table and -out")
	}
	writer, err := parsers.GetWriter(*appFlags.Out)
	if err != nil {
		return err
	}
	tt, err := shared.ParseTableType(*appFlags.Table)
	if err != nil {
		return err
	}
	table, md, err := lookupTable(ctx, reader, tt)
	if err != nil {
		return err
	}
	if len(corrs) > 0 && table.HasColumn("corr") {
		if table, err = table.FilterIn("corr", corrs...); err != nil {
			return err
		}
	}
	if *appFlags.Where != "" {
		if table, err = table.Where(*appFlags.Where); err != nil {
			return err
		}
	}
	if *appFlags.Sort != "" {
		if table, err = table.SortBy(strings.Split(*appFlags.Sort, ",")...); err != nil {
			return err
		}
	}

	f, err := os.Create(*appFlags.Out)
	if err != nil {
		return err
	}
	if err := writer.Write(f, table, md); err != nil {
		f.Close()
		return err
	}
	reader.Logger().Info("exported table", "table", tt, "rows", table.NumRows(), "out", *appFlags.Out)
	return f.Close()
}

// lookupTable finds a per-field table (-field) or the calibration table of
// -table for the antenna or SPW given by -field.
func lookupTable(ctx context.Context, reader *repository.Reader, tt shared.TableType) (*shared.RawTable, shared.Metadata, error) {
	if tt.Grouping() == shared.ByField {
		if *appFlags.Field == "" {
			return nil, nil, errors.New("export of a field table needs -field")
		}
		c, err := reader.ReadFieldDataTables(ctx, *appFlags.Field)
		if err != nil {
			return nil, nil, err
		}
		table, ok := c.Get(tt)
		if !ok {
			return nil, nil, fmt.Errorf("field %s has no %s table", *appFlags.Field, tt)
		}
		return table, c.Meta[tt], nil
	}

	var id int
	if _, err := fmt.Sscanf(*appFlags.Field, "%d", &id); err != nil {
		return nil, nil, fmt.Errorf("export of %s needs the %s id in -field", tt, tt.Grouping())
	}
	for _, kind := range shared.CalKinds {
		for _, t := range kind.TableTypes() {
			if t != tt {
				continue
			}
			c, err := reader.ReadCalTables(ctx, kind)
			if err != nil {
				return nil, nil, err
			}
			table, ok := c.Tables[tt][id]
			if !ok {
				return nil, nil, fmt.Errorf("no %s table for %s %d", tt, tt.Grouping(), id)
			}
			return table, c.Meta[tt][id], nil
		}
	}
	return nil, nil, fmt.Errorf("%s is not a calibration table", tt)
}

func runQuery(ctx context.Context, out io.Writer, reader *repository.Reader) error {
	if *appFlags.Field == "" {
		return errors.New("query needs -field")
	}
	var src io.Reader = strings.NewReader(*appFlags.Query)
	if *appFlags.Stdin {
		src = os.Stdin
	}
	query, format, err := utils.ReadQuery(src, *appFlags.Format)
	if err != nil {
		return err
	}
	if strings.TrimSpace(query) == "" {
		return errors.New("empty query")
	}
	c, err := reader.ReadFieldDataTables(ctx, *appFlags.Field)
	if err != nil {
		return err
	}
	tables := make(map[string]*shared.RawTable, len(c.Tables))
	for tt, t := range c.Tables {
		tables[tt.String()] = t
	}
	res, err := db.Query(ctx, tables, query, format)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, res)
	return err
}

func runServe(reader *repository.Reader, cfg *config.QAConfiguration) error {
	var spws spwmap.Map
	if cfg.SpwMap != "" {
		var err error
		if spws, err = spwmap.Load(cfg.SpwMap); err != nil {
			return fmt.Errorf("failed to load spw map: %w", err)
		}
	}
	host, port := config.Config.HTTP.Host, config.Config.HTTP.Port
	if *appFlags.Host != "" {
		host = *appFlags.Host
	}
	if *appFlags.Port != "" {
		port = *appFlags.Port
	}

	api := router.NewApi()
	qa.Init(api, repository.NewRegistry(reader), spws, cfg.Corrs)
	api.Handle("/metrics", promhttp.Handler())

	reader.Logger().Info("QA API running", "addr", host+":"+port, "root", cfg.Root)
	return http.ListenAndServe(host+":"+port, api)
}
