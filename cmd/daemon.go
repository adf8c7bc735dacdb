package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/badroneai/finance-flow-sub001/internal/cli"
	"github.com/badroneai/finance-flow-sub001/internal/config"
	"github.com/badroneai/finance-flow-sub001/internal/daemon"

	"github.com/spf13/cobra"
)

var (
	flagDaemonAddr         string
	flagDaemonInterval     time.Duration
	flagDaemonDetach       bool
	flagDaemonPIDFile      string
	flagDaemonLogFile      string
	flagDaemonEventsBuffer int
	flagDaemonChild        bool
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run a background ledger monitor with HTTP/SSE endpoints",
	Long: `Poll the database on an interval, recompute the radar, compliance and
inbox for every ledger (or only --ledger), and publish snapshot and delta
events over HTTP. Endpoints: /healthz, /v1/status, /v1/events, /v1/stream.`,
	RunE: runDaemon,
}

var daemonStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon process and per-ledger status",
	RunE:  runDaemonStatus,
}

var daemonStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running daemon",
	RunE:  runDaemonStop,
}

func init() {
	pf := daemonCmd.PersistentFlags()
	pf.StringVar(&flagDaemonAddr, "addr", daemon.DefaultAddr, "HTTP listen address")
	pf.DurationVar(&flagDaemonInterval, "interval", 30*time.Second, "Polling interval")
	pf.StringVar(&flagDaemonPIDFile, "pid-file", filepath.Join(config.DataDir(), "financeflowd.pid"), "PID file path")
	pf.StringVar(&flagDaemonLogFile, "log-file", filepath.Join(config.DataDir(), "financeflowd.log"), "Log file path for detached mode")
	pf.IntVar(&flagDaemonEventsBuffer, "events-buffer", 200, "Max in-memory events retained")

	daemonCmd.Flags().BoolVar(&flagDaemonDetach, "detach", false, "Run daemon as a background process")
	daemonCmd.Flags().BoolVar(&flagDaemonChild, "child", false, "Internal: mark detached child process")
	_ = daemonCmd.Flags().MarkHidden("child")

	daemonCmd.AddCommand(daemonStatusCmd, daemonStopCmd)
	rootCmd.AddCommand(daemonCmd)
}

// runtimeState is written next to the pid file so status can find the API.
type runtimeState struct {
	PID       int       `json:"pid"`
	Addr      string    `json:"addr"`
	StartedAt time.Time `json:"started_at"`
	DBPath    string    `json:"db_path"`
	Ledger    string    `json:"ledger,omitempty"`
}

// pidFiles manages the pid file and its JSON state sidecar.
type pidFiles struct {
	pid   string
	state string
}

func newPIDFiles(pidPath string) pidFiles {
	return pidFiles{pid: pidPath, state: pidPath + ".json"}
}

func (f pidFiles) write(st runtimeState) error {
	if err := os.MkdirAll(filepath.Dir(f.pid), 0o750); err != nil {
		return fmt.Errorf("create daemon directory: %w", err)
	}
	if err := os.WriteFile(f.pid, []byte(strconv.Itoa(st.PID)+"\n"), 0o600); err != nil {
		return err
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.state, append(data, '\n'), 0o600)
}

func (f pidFiles) readPID() (int, error) {
	data, err := os.ReadFile(f.pid) //nolint:gosec // pid path is configured by the local user
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("invalid pid in %s", f.pid)
	}
	return pid, nil
}

func (f pidFiles) readState() (runtimeState, error) {
	var st runtimeState
	data, err := os.ReadFile(f.state) //nolint:gosec // state path is configured by the local user
	if err != nil {
		return st, err
	}
	err = json.Unmarshal(data, &st)
	return st, err
}

func (f pidFiles) remove() {
	_ = os.Remove(f.pid)
	_ = os.Remove(f.state)
}

// claim fails when a live daemon owns the pid file and clears stale files.
func (f pidFiles) claim() error {
	pid, err := f.readPID()
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil
	case err != nil:
		return err
	case processAlive(pid):
		return fmt.Errorf("daemon already running (pid %d)", pid)
	}
	f.remove()
	return nil
}

func runDaemon(_ *cobra.Command, _ []string) error {
	files := newPIDFiles(flagDaemonPIDFile)
	switch {
	case flagDaemonDetach && flagDaemonChild:
		return errors.New("invalid daemon launch mode")
	case flagDaemonDetach:
		return startDetached(files)
	default:
		return runForeground(files)
	}
}

func startDetached(files pidFiles) error {
	if err := files.claim(); err != nil {
		return err
	}
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(flagDaemonLogFile), 0o750); err != nil {
		return fmt.Errorf("create daemon log directory: %w", err)
	}
	logf, err := os.OpenFile(flagDaemonLogFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600) //nolint:gosec // log path is configured by the local user
	if err != nil {
		return fmt.Errorf("open daemon log file: %w", err)
	}
	defer func() { _ = logf.Close() }()

	args := append(withoutDetach(os.Args[1:]), "--child")
	child := exec.Command(exe, args...) //nolint:gosec // re-executes the current binary
	child.Stdout = logf
	child.Stderr = logf
	child.Env = os.Environ()
	if err := child.Start(); err != nil {
		return fmt.Errorf("start detached daemon: %w", err)
	}

	fmt.Print(cli.RenderKV([][2]string{
		{"Started daemon", fmt.Sprintf("pid %d", child.Process.Pid)},
		{"PID file", files.pid},
		{"API", "http://" + flagDaemonAddr + "/v1/status"},
		{"Log", flagDaemonLogFile},
	}))
	return nil
}

func runForeground(files pidFiles) error {
	if err := files.claim(); err != nil {
		return err
	}
	c, err := clock()
	if err != nil {
		return err
	}
	// Migrate up front so the first poll never races schema creation.
	st, err := openStore()
	if err != nil {
		return err
	}
	_ = st.Close()

	cfg := daemon.Config{
		DBPath:       dbPath(),
		LedgerID:     flagLedger,
		Interval:     flagDaemonInterval,
		Addr:         flagDaemonAddr,
		EventsBuffer: flagDaemonEventsBuffer,
		Assumptions:  appCfg.Assumptions(),
		Clock:        c,
		Logger:       slog.Default(),
	}

	if err := files.write(runtimeState{
		PID:       os.Getpid(),
		Addr:      cfg.Addr,
		StartedAt: time.Now(),
		DBPath:    cfg.DBPath,
		Ledger:    cfg.LedgerID,
	}); err != nil {
		return err
	}
	defer files.remove()

	fmt.Printf("  financeflow daemon listening on http://%s\n", cfg.Addr)
	fmt.Printf("  Polling %s every %s\n", cfg.DBPath, cfg.Interval)
	fmt.Printf("  Stop with: financeflow daemon stop --pid-file %s\n", files.pid)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := daemon.New(cfg).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runDaemonStatus(cmd *cobra.Command, _ []string) error {
	files := newPIDFiles(flagDaemonPIDFile)
	pid, err := files.readPID()
	if err != nil {
		fmt.Println(cli.RenderNote("Daemon not running (no pid file)."))
		return nil
	}
	if !processAlive(pid) {
		fmt.Println(cli.RenderNote(fmt.Sprintf("Stale pid file: pid %d is not alive.", pid)))
		return nil
	}

	addr := flagDaemonAddr
	if rs, err := files.readState(); err == nil && rs.Addr != "" {
		addr = rs.Addr
	}

	status, err := fetchStatus(cmd.Context(), addr)
	pairs := [][2]string{{"PID", strconv.Itoa(pid)}, {"Address", "http://" + addr}}
	if err != nil {
		pairs = append(pairs, [2]string{"API", "unreachable (" + err.Error() + ")"})
		fmt.Print(cli.RenderKV(pairs))
		return nil
	}

	lastPoll := "pending"
	if !status.LastPollAt.IsZero() {
		lastPoll = status.LastPollAt.Local().Format(time.RFC3339)
	}
	pairs = append(pairs,
		[2]string{"Database", status.DBPath},
		[2]string{"Last poll", lastPoll},
		[2]string{"Polls", strconv.FormatInt(status.PollCount, 10)},
		[2]string{"Events", fmt.Sprintf("%d (%d subscribers)", status.EventCount, status.SubscriberCount)},
	)
	if status.LastError != "" {
		pairs = append(pairs, [2]string{"Last error", status.LastError})
	}
	fmt.Print(cli.RenderKV(pairs))

	if len(status.Summary.Ledgers) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(status.Summary.Ledgers))
	for _, l := range status.Summary.Ledgers {
		rows = append(rows, []string{
			l.LedgerID,
			strconv.Itoa(l.PressureScore),
			string(l.PressureBand),
			strconv.Itoa(l.ComplianceScore),
			strconv.Itoa(l.InboxSize),
			cli.FormatMoney(l.OverdueTotal, currency()),
		})
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Ledger", "Pressure", "Band", "Compliance", "Inbox", "Overdue"},
		Rows:    rows,
	}))
	return nil
}

func fetchStatus(ctx context.Context, addr string) (daemon.Status, error) {
	var st daemon.Status
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://"+addr+"/v1/status", nil)
	if err != nil {
		return st, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return st, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return st, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		return st, fmt.Errorf("malformed response: %w", err)
	}
	return st, nil
}

func runDaemonStop(_ *cobra.Command, _ []string) error {
	files := newPIDFiles(flagDaemonPIDFile)
	pid, err := files.readPID()
	if err != nil {
		return errors.New("daemon is not running")
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("find daemon process: %w", err)
	}
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("signal daemon process: %w", err)
	}

	tick := time.NewTicker(150 * time.Millisecond)
	defer tick.Stop()
	timeout := time.After(8 * time.Second)
	for {
		select {
		case <-tick.C:
			if !processAlive(pid) {
				files.remove()
				fmt.Printf("  Stopped daemon (pid %d)\n", pid)
				return nil
			}
		case <-timeout:
			return fmt.Errorf("daemon (pid %d) did not exit in time", pid)
		}
	}
}

func withoutDetach(args []string) []string {
	return slices.DeleteFunc(slices.Clone(args), func(a string) bool {
		return a == "--detach" || strings.HasPrefix(a, "--detach=")
	})
}

func processAlive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = proc.Signal(syscall.Signal(0))
	return err == nil || errors.Is(err, syscall.EPERM)
}
