package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spark-tui/sparkinstall/internal/cmdexec"
	"github.com/spark-tui/sparkinstall/internal/config"
	"github.com/spark-tui/sparkinstall/internal/fetch"
	"github.com/spark-tui/sparkinstall/internal/installer"
	"github.com/spark-tui/sparkinstall/internal/log"
	"github.com/spark-tui/sparkinstall/internal/osinfo"
	"github.com/spark-tui/sparkinstall/internal/pkgmanager"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sparkinstall",
	Short: "Spark installer",
	Long: "Build and install the Spark task manager\n\n" +
		"Installs the spark binary under $PREFIX/bin and a desktop entry that\n" +
		"opens Spark in its own terminal window, pinned as \"Spark\" in the dock.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		log.SetVerbose(verbose)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(renderBanner())
		fmt.Printf("sparkinstall %s\n", Version)
	},
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Build spark from a local source tree and install it",
	Args:  cobra.NoArgs,
	RunE:  runInstall,
}

var remoteCmd = &cobra.Command{
	Use:   "remote [REPO_URL]",
	Short: "Clone spark and install it",
	Long: "Clone the spark repository and install it\n\n" +
		"The clone goes to $CLONE_DIR when set, otherwise to a temporary\n" +
		"directory that is removed when the run ends.",
	Args: cobra.MaximumNArgs(1),
	RunE: runRemote,
}

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Show the detected session and the launcher that would be written",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		fmt.Println(renderPreview(a.pipeline().Preview()))
		return nil
	},
}

// app holds what every command needs, assembled once from the environment.
type app struct {
	cfg     config.Config
	fs      afero.Fs
	exec    cmdexec.Executor
	manager pkgmanager.PackageManager
}

func newApp(cmd *cobra.Command) (*app, error) {
	configFile, _ := cmd.Flags().GetString("config")

	fs := afero.NewOsFs()
	cfg, err := config.Load(config.LoadOptions{Fs: fs, ConfigFile: configFile})
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:  cfg,
		fs:   fs,
		exec: cmdexec.NewRealExecutor(),
	}
	a.manager = a.detectPackageManager()
	return a, nil
}

func (a *app) detectPackageManager() pkgmanager.PackageManager {
	var ids []string
	if info, err := osinfo.GetOSInfo(a.fs); err != nil {
		log.Debugf("Could not read os-release: %v", err)
	} else {
		log.Debugf("Detected %s", info.PrettyName)
		ids = info.IDs()
	}

	typ, ok := pkgmanager.Detect(a.fs, a.cfg.SearchPath, ids...)
	if !ok {
		log.Debug("No supported package manager found")
		return nil
	}

	manager, err := pkgmanager.NewPackageManager(typ, a.exec, a.cfg.IsRoot)
	if err != nil {
		log.Debugf("Package manager unavailable: %v", err)
		return nil
	}
	return manager
}

func (a *app) pipeline() *installer.Pipeline {
	return installer.NewPipeline(a.cfg, a.fs, a.exec, a.manager).WithProgress(printProgress)
}

func runInstall(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	source, _ := cmd.Flags().GetString("source")
	if a.cfg.SourceDir, err = filepath.Abs(source); err != nil {
		return fmt.Errorf("invalid source directory %s: %w", source, err)
	}

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		fmt.Println(renderPreview(a.pipeline().Preview()))
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return a.install(ctx)
}

func runRemote(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	url := config.DefaultRepoURL
	if len(args) > 0 {
		url = args[0]
	}

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		log.Infof("Would clone %s", url)
		fmt.Println(renderPreview(a.pipeline().Preview()))
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cloner, err := fetch.NewCloner(a.cfg, a.fs, a.exec, os.Stderr)
	if err != nil {
		return err
	}

	ws, err := fetch.Prepare(a.fs, a.cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := ws.Close(); err != nil {
			log.Warn(err)
		}
	}()

	if err := cloner.Clone(ctx, url, ws.Dir); err != nil {
		return err
	}

	a.cfg.SourceDir = ws.Dir
	return a.install(ctx)
}

func (a *app) install(ctx context.Context) error {
	fmt.Fprintln(os.Stderr, renderBanner())

	result, err := a.pipeline().Run(ctx)
	if err != nil {
		return err
	}

	fmt.Println(renderResult(result))
	return nil
}
