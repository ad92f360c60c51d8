package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	dirchecksums "github.com/mattkeenan/dirchecksums/pkg"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// app carries state shared by the commands of one invocation
type app struct {
	fs     afero.Fs
	stdout io.Writer
	stderr io.Writer
	cfg    *dirchecksums.Config
}

// rootFlags holds the raw command line values
type rootFlags struct {
	algorithm        string
	create           bool
	verify           bool
	depth            int
	recursive        bool
	file             string
	force            bool
	followSymlinks   bool
	noFollowSymlinks bool
	ignore           []string
	jobs             string
	format           string
	configPath       string
	verbose          int
	debug            string
}

func newRootCmd(a *app) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "dcsum [flags] [DIRECTORY]",
		Short: "Create or verify a checksum table for a directory tree",
		Long: `dcsum hashes every file below DIRECTORY and either writes the hashes to
a table (--create) or compares the tree against an existing table (--verify,
the default).

Exit status: 0 ok, 1 bad options or I/O failure, 2 hash length mismatch,
3 malformed hash table, 3+N when N files differ (at most 255).`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig(cmd, flags)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.buildOptions(cmd, flags, args)
			if err != nil {
				return err
			}
			return a.runChecksums(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.SortFlags = false
	f.StringVarP(&flags.algorithm, "algorithm", "a", dirchecksums.DefaultAlgorithm,
		"Hashing algorithm ("+strings.Join(dirchecksums.SupportedAlgorithms(), ", ")+")")
	f.BoolVarP(&flags.create, "create", "c", false, "Create a new hash table")
	f.BoolVarP(&flags.verify, "verify", "v", false, "Verify the directory against the hash table (default)")
	f.IntVarP(&flags.depth, "depth", "d", 0, "Max recursion depth, negative for infinite")
	f.BoolVarP(&flags.recursive, "recursive", "r", false, "Infinite recursion depth")
	f.StringVarP(&flags.file, "file", "f", "", "Hash table to use (default DIRECTORY/DIRNAME.hash)")
	f.BoolVar(&flags.force, "force", false, "Overwrite an existing hash table in create mode")
	f.BoolVar(&flags.followSymlinks, "follow-symlinks", false, "Follow symbolic links (default)")
	f.BoolVar(&flags.noFollowSymlinks, "no-follow-symlinks", false, "Skip symbolic links")
	f.StringSliceVarP(&flags.ignore, "ignore", "i", nil, "Ignore entries with this name, repeatable or comma-separated")
	f.StringVarP(&flags.jobs, "jobs", "j", "", "Hashing workers: auto (CPU count), -1 unbounded, or N")
	f.StringVar(&flags.format, "format", dirchecksums.DefaultFormat, "Output format: human, json, yaml")

	cmd.MarkFlagsMutuallyExclusive("create", "verify")
	cmd.MarkFlagsMutuallyExclusive("depth", "recursive")
	cmd.MarkFlagsMutuallyExclusive("follow-symlinks", "no-follow-symlinks")

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/dcsum/config)")
	pf.CountVarP(&flags.verbose, "verbose", "V", "Increase verbosity (repeatable)")
	pf.StringVar(&flags.debug, "debug", "", "Comma-separated debug areas (walk, hash, dispatch, codec, compare)")

	cmd.AddCommand(newConfigCmd(a))
	return cmd
}

// loadConfig reads the config file and applies logging settings, letting
// flags take precedence
func (a *app) loadConfig(cmd *cobra.Command, flags *rootFlags) error {
	cfg, err := dirchecksums.LoadConfig(a.fs, flags.configPath)
	if err != nil {
		return &dirchecksums.OptionsError{Err: err}
	}
	a.cfg = cfg

	verboseConfig := cfg.GetVerboseConfig()
	level := verboseConfig.Level
	if cmd.Flags().Changed("verbose") {
		level = flags.verbose
	}
	dirchecksums.SetVerboseLevel(level)

	debug := verboseConfig.Debug
	if cmd.Flags().Changed("debug") {
		debug = flags.debug
	}
	dirchecksums.InitDebugFlags(debug)
	dirchecksums.LogDebugFlags()

	return nil
}

// buildOptions merges flags over the config file over built-in defaults
func (a *app) buildOptions(cmd *cobra.Command, flags *rootFlags, args []string) (*dirchecksums.Options, error) {
	changed := cmd.Flags().Changed
	all := a.cfg.GetAllConfig()

	optionsErr := func(err error) (*dirchecksums.Options, error) {
		return nil, &dirchecksums.OptionsError{Err: err}
	}

	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return optionsErr(fmt.Errorf("invalid directory %q: %w", dir, err))
	}

	algoName := all.Hash.Default
	if changed("algorithm") {
		algoName = flags.algorithm
	}
	algo, err := dirchecksums.ParseAlgorithm(algoName)
	if err != nil {
		return optionsErr(err)
	}
	if _, err := dirchecksums.Resolve(algo); err != nil {
		return optionsErr(err)
	}

	depth := dirchecksums.DepthFromInt(all.Walk.Depth)
	switch {
	case flags.recursive:
		depth = dirchecksums.Infinite
	case changed("depth"):
		depth = dirchecksums.DepthFromInt(flags.depth)
	}

	follow := all.Walk.FollowSymlinks
	switch {
	case flags.noFollowSymlinks:
		follow = false
	case flags.followSymlinks:
		follow = true
	}

	jobsStr := all.Performance.Jobs
	if changed("jobs") {
		jobsStr = flags.jobs
	}
	jobs, err := dirchecksums.ParseJobs(jobsStr)
	if err != nil {
		return optionsErr(err)
	}

	bufferSize, err := dirchecksums.ParseHumanSize(all.Hash.HashBuffer)
	if err != nil {
		return optionsErr(fmt.Errorf("invalid hash_buffer in %s: %w", a.cfg.Path(), err))
	}

	format := all.Output.Format
	if changed("format") {
		format = flags.format
	}

	mode := dirchecksums.ModeVerify
	if flags.create {
		mode = dirchecksums.ModeCreate
	}

	hashFile := flags.file
	if hashFile != "" {
		if hashFile, err = filepath.Abs(hashFile); err != nil {
			return optionsErr(fmt.Errorf("invalid hash file %q: %w", flags.file, err))
		}
	}

	return &dirchecksums.Options{
		Directory:      absDir,
		HashFile:       dirchecksums.ResolveHashFile(absDir, hashFile),
		Algorithm:      algo,
		Mode:           mode,
		Depth:          depth,
		FollowSymlinks: follow,
		Ignore:         dirchecksums.NewIgnoreSet(append(all.Walk.Ignore, flags.ignore...)...),
		Jobs:           jobs,
		HashBuffer:     bufferSize,
		Force:          flags.force,
		Format:         strings.ToLower(format),
	}, nil
}

func (a *app) runChecksums(cmd *cobra.Command, opts *dirchecksums.Options) error {
	dirchecksums.Logger().Info("starting",
		"mode", opts.Mode.String(),
		"dir", opts.Directory,
		"file", opts.HashFile,
		"algorithm", opts.Algorithm.String(),
		"depth", opts.Depth.String())

	result, err := dirchecksums.Run(cmd.Context(), a.fs, opts)
	if err != nil {
		return err
	}

	color := dirchecksums.ColorEnabled(a.cfg.GetOutputConfig().Color, a.stdout)
	rw := dirchecksums.NewReportWriter(a.stdout, opts.Format, color)

	if result.Mode == dirchecksums.ModeCreate {
		return rw.WriteCreated(result.HashFile, opts.Algorithm, result.Stats)
	}

	if err := rw.WriteOutcome(result.Outcome, opts.Algorithm, result.Stats); err != nil {
		return err
	}
	return dirchecksums.Summarize(result.Outcome)
}
