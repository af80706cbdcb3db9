package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/muurk/mallas/internal/backend"
	"github.com/muurk/mallas/internal/config"
	"github.com/muurk/mallas/internal/controller"
	"github.com/muurk/mallas/internal/discovery"
	"github.com/muurk/mallas/internal/form"
	"github.com/muurk/mallas/internal/logging"
	"github.com/muurk/mallas/internal/tui"
	"github.com/muurk/mallas/internal/ui"
)

// Command flags
var (
	noAnimation  bool
	withExample  bool
	withSubmit   bool
	exportDir    string
	exportStdout bool
	scanTimeout  int
	noSave       bool
	setValues    []string
	plainOutput  bool
)

func init() {
	rootCmd.Flags().BoolVar(&noAnimation, "no-animation", false, "Disable the electron animation")

	uiCmd.Flags().BoolVar(&noAnimation, "no-animation", false, "Disable the electron animation")

	validateCmd.Flags().BoolVar(&plainOutput, "plain", false, "Print a plain-text table without boxes or colours")

	exampleCmd.Flags().BoolVar(&withSubmit, "submit", false, "Submit the example and print the mesh currents")
	exampleCmd.Flags().StringArrayVar(&setValues, "set", nil, "Override a field after the example is applied (NAME=VALUE, repeatable)")

	exportCmd.Flags().BoolVar(&withExample, "example", false, "Fill the form with the example values first")
	exportCmd.Flags().BoolVar(&withSubmit, "submit", false, "Submit the form before exporting")
	exportCmd.Flags().StringVar(&exportDir, "dir", "", "Export directory (overrides export.directory)")
	exportCmd.Flags().BoolVar(&exportStdout, "stdout", false, "Also print the CSV to stdout")
	exportCmd.Flags().StringArrayVar(&setValues, "set", nil, "Type a value into a field (NAME=VALUE, repeatable)")

	scanCmd.Flags().IntVar(&scanTimeout, "wait", 0, "Scan duration in seconds (overrides discovery.timeout)")
	scanCmd.Flags().BoolVar(&noSave, "no-save", false, "Do not remember found backends in the config file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(uiCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(exampleCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(configCmd)
}

// commandContext is cancelled by Ctrl+C or when the request budget runs out.
func commandContext() (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	ctx, cancel := context.WithTimeout(ctx, requestTimeout())
	return ctx, func() {
		cancel()
		stop()
	}
}

// uiCmd launches the interactive UI
var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Launch the interactive UI",
	Long: `Launch the full-screen terminal UI.

The UI loads the simulator's form page, validates every field as it is
typed, submits the form and shows the mesh currents. From the results you
can highlight a mesh, export the CSV or copy the currents.`,
	Example: `  # Against the default local backend
  mallas
  mallas ui

  # Against a backend on another host
  mallas --backend http://192.168.1.20:5000`,
	RunE: runUI,
}

func runUI(cmd *cobra.Command, args []string) error {
	if !ui.IsTerminal() {
		return errors.New("the interactive UI needs a terminal; use 'mallas validate' or 'mallas export' instead")
	}

	// Log lines would tear the screen, so they go to a file.
	if logFile == "" {
		if p, err := config.DefaultLogPath(); err == nil {
			logFile = p
			_ = config.EnsureConfigDir()
		}
	}
	if err := logging.InitializeWithOptions(logging.Options{Level: logLevel, File: logFile}); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	model := tui.NewAppModel(ctx, tui.Options{
		Client:    newClient(),
		ExportDir: settings.Export.Directory,
		Clipboard: controller.SystemClipboard{},
		Animate:   !noAnimation,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("ui error: %w", err)
	}
	return nil
}

// validateCmd checks values offline
var validateCmd = &cobra.Command{
	Use:   "validate NAME=VALUE...",
	Short: "Validate field values without contacting the backend",
	Long: `Validate resistances and voltages with the same rules as the form.

Field names starting with R are resistances (0.1 to 1000 Ω); names starting
with V are voltages (1 to 500 V). Other names only need a positive number.
The command exits with status 1 when any value is invalid.`,
	Example: `  mallas validate R1=2 R2=4 V1=12
  mallas validate R1=0.05 V1=abc

  # Plain text, for scripts
  mallas validate --plain R1=2 V1=600`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	fields, err := parseAssignments(args)
	if err != nil {
		return err
	}

	state := form.NewState(fields)
	res := state.ValidateAll()

	if plainOutput {
		out := cmd.OutOrStdout()
		fmt.Fprint(out, state.FormatFields())
		if report := form.FormatResult(res); report != "" {
			fmt.Fprint(out, "\n"+report)
			return fmt.Errorf("%d invalid field(s)", len(res.Invalid()))
		}
		return nil
	}

	p := ui.NewPrinter(cmd.OutOrStdout())
	p.PrintHeader("Validate", "mallas validate", ui.Detail{Key: "Fields", Value: fmt.Sprint(len(state.Fields))})
	p.PrintVerdicts(state.Fields)
	p.Newline()

	if invalid := res.Invalid(); len(invalid) > 0 {
		p.PrintWarning(form.MsgFormHasErrors, ui.Detail{Key: "Invalid", Value: strings.Join(invalid, ", ")})
		return fmt.Errorf("%d invalid field(s)", len(invalid))
	}
	p.PrintSuccess("All fields valid")
	return nil
}

// applyAssignments types each NAME=VALUE into the form.
func applyAssignments(ctx context.Context, s *session, args []string) error {
	fields, err := parseAssignments(args)
	if err != nil {
		return err
	}
	for _, f := range fields {
		ok, err := s.set(ctx, f.Name, f.Value)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("the form has no field %q", f.Name)
		}
	}
	return nil
}

// parseAssignments turns NAME=VALUE arguments into form fields.
func parseAssignments(args []string) ([]form.Field, error) {
	fields := make([]form.Field, 0, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid argument %q: expected NAME=VALUE", arg)
		}
		fields = append(fields, form.Field{Name: name, Value: value})
	}
	return fields, nil
}

// exampleCmd loads the example record into the form
var exampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Load the example values into the form",
	Long: `Fetch the form page and the example record from the backend, apply
the example to the form and print the resulting verdicts.

With --submit the form is then submitted and the mesh currents printed.`,
	Example: `  mallas example
  mallas example --submit --backend http://127.0.0.1:5000`,
	RunE: runExample,
}

func runExample(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	client := newClient()
	p := ui.NewPrinter(cmd.OutOrStdout())
	p.PrintHeader("Example", "mallas example",
		ui.Detail{Key: "Backend", Value: client.BaseURL},
		ui.Detail{Key: "Example", Value: client.ExampleURL()},
	)

	s, err := openSession(ctx, client, settings.Export.Directory)
	if err != nil {
		return reportBackendError(p, "Could not load the form", err)
	}
	defer s.close()

	if err := s.loadExample(ctx); err != nil {
		return reportBackendError(p, form.MsgExampleFailed, err)
	}
	if err := applyAssignments(ctx, s, setValues); err != nil {
		return err
	}

	fields, err := s.fields(ctx)
	if err != nil {
		return err
	}
	p.PrintVerdicts(fields)
	p.Newline()

	if !withSubmit {
		p.PrintSuccess("Example applied", ui.Detail{Key: "Fields", Value: fmt.Sprint(len(fields))})
		return nil
	}
	return submitAndPrint(ctx, p, s)
}

func submitAndPrint(ctx context.Context, p *ui.Printer, s *session) error {
	if err := s.submit(ctx); err != nil {
		return reportSubmitError(ctx, p, s, err)
	}

	doc := s.page()
	if doc.ServerError != "" {
		p.PrintWarning(doc.ServerError)
	}
	p.PrintResults(doc.ResultEntries())
	p.Newline()
	p.PrintSuccess("Simulation complete", ui.Detail{Key: "Meshes", Value: fmt.Sprint(doc.ResultCards())})
	return nil
}

// exportCmd writes the CSV export
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the parameters and mesh currents as CSV",
	Long: `Fetch the form page and write simulacion_mallas.csv with the form
parameters and, when the page shows results, the mesh currents.

Use --example and --submit to fill and run the simulation first.`,
	Example: `  # Export the current page
  mallas export

  # Run the example simulation and export it to ./out
  mallas export --example --submit --dir ./out`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	dir := exportDir
	if dir == "" {
		dir = settings.Export.Directory
	}

	client := newClient()
	p := ui.NewPrinter(cmd.OutOrStdout())

	s, err := openSession(ctx, client, dir)
	if err != nil {
		return reportBackendError(p, "Could not load the form", err)
	}
	defer s.close()

	if withExample {
		if err := s.loadExample(ctx); err != nil {
			return reportBackendError(p, form.MsgExampleFailed, err)
		}
	}
	if err := applyAssignments(ctx, s, setValues); err != nil {
		return err
	}
	if withSubmit {
		if err := s.submit(ctx); err != nil {
			return reportSubmitError(ctx, p, s, err)
		}
	}

	path, data, err := s.export(ctx)
	if err != nil {
		p.PrintError("Export failed", err)
		return fmt.Errorf("export failed: %w", err)
	}

	if exportStdout {
		_, _ = cmd.OutOrStdout().Write(data)
		p.Newline()
	}
	p.PrintSuccess("CSV exported",
		ui.Detail{Key: "File", Value: path},
		ui.Detail{Key: "Size", Value: fmt.Sprintf("%d bytes", len(data))},
		ui.Detail{Key: "Meshes", Value: fmt.Sprint(len(s.page().ResultEntries()))},
	)
	return nil
}

// scanCmd discovers backends on the network
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for simulator backends on the network",
	Long: `Scan for simulator backends using mDNS/DNS-SD discovery.

Backends announce themselves as _http._tcp services with the TXT record
app=mallas. Found backends are remembered in the config file.`,
	Example: `  mallas scan
  mallas scan --wait 10 --no-save`,
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	timeout := settings.DiscoveryTimeout()
	if scanTimeout > 0 {
		timeout = secondsDuration(scanTimeout)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := ui.NewPrinter(cmd.OutOrStdout())
	p.Println(fmt.Sprintf("Scanning for simulator backends (timeout: %s)...", timeout))
	p.Newline()

	servers, err := discovery.QuickScan(ctx, timeout)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(servers) == 0 {
		p.PrintWarning("No backends found")
		p.Println("  - Ensure the simulator is running and advertised over mDNS")
		p.Println("  - Try increasing --wait for slower networks")
		p.Println("  - Use --backend to give the URL directly")
		return nil
	}

	for i, srv := range servers {
		p.Println(fmt.Sprintf("%d. %s", i+1, srv.Instance))
		p.Println(fmt.Sprintf("   URL:  %s", srv.BaseURL()))
		if srv.Hostname != "" {
			p.Println(fmt.Sprintf("   Host: %s", srv.Hostname))
		}
		p.Println("   Page: " + pingStatus(ctx, srv.BaseURL()))
		if !noSave {
			settings.RememberServer(srv.Instance, srv.BaseURL())
		}
	}
	p.Newline()

	if !noSave {
		if err := settings.SaveFile(configPath); err != nil {
			return fmt.Errorf("failed to remember backends: %w", err)
		}
	}
	p.Println("Use 'mallas --backend <url>' to connect to one of them")
	return nil
}

// pingStatus reports whether the backend at baseURL serves its page.
func pingStatus(ctx context.Context, baseURL string) string {
	c := backend.NewClient(baseURL)
	c.SetTimeout(settings.BackendTimeout())
	if err := c.Ping(ctx); err != nil {
		return "no response (" + backend.GetShortErrorMessage(err) + ")"
	}
	return "reachable"
}

// configCmd groups the config subcommands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create the configuration file",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := yaml.Marshal(settings)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "# %s\n", configPath)
		_, _ = out.Write(data)

		if len(settings.Servers) > 0 {
			names := make([]string, 0, len(settings.Servers))
			for name := range settings.Servers {
				names = append(names, name)
			}
			sort.Strings(names)
			fmt.Fprintf(out, "# %d remembered backend(s): %s\n", len(names), strings.Join(names, ", "))
		}
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.CreateDefaultConfig(configPath)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
		return nil
	},
}

// reportBackendError prints a failure box with a troubleshooting hint and
// returns the error for main to report.
func reportBackendError(p *ui.Printer, title string, err error) error {
	var tips []string
	if hint := backend.GetTroubleshootingHint(err); hint != "" {
		tips = append(tips, hint)
	}
	p.PrintError(title, errors.New(backend.GetShortErrorMessage(err)), tips...)
	return fmt.Errorf("%s: %w", title, err)
}

// reportSubmitError prints the verdicts and banner for a rejected form, or
// a failure box for a transport error.
func reportSubmitError(ctx context.Context, p *ui.Printer, s *session, err error) error {
	if !controller.IsValidationError(err) {
		return reportBackendError(p, "Submission failed", err)
	}
	if fields, ferr := s.fields(ctx); ferr == nil {
		p.PrintVerdicts(fields)
		p.Newline()
	}
	msg := form.MsgFormHasErrors
	if text, berr := s.banner(ctx); berr == nil && text != "" {
		msg = text
	}
	p.PrintWarning(msg)
	return err
}
