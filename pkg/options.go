package dirchecksums

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/spf13/afero"
)

// Mode selects between writing a new hash table and checking an existing one
type Mode int

const (
	ModeVerify Mode = iota
	ModeCreate
)

func (m Mode) String() string {
	if m == ModeCreate {
		return "create"
	}
	return "verify"
}

// ErrOutputExists is wrapped by the OptionsError returned when create mode
// would overwrite a hash table without force
var ErrOutputExists = errors.New("The output file exists and was not overridden to prevent data loss. Pass the --force option to suppress this error.")

// Options drives one create or verify run
type Options struct {
	Directory      string `validate:"required,dir"`
	HashFile       string `validate:"required"`
	Algorithm      Algorithm
	Mode           Mode
	Depth          DepthSetting
	FollowSymlinks bool
	Ignore         *IgnoreSet
	Jobs           int    `validate:"gte=-1"`
	HashBuffer     int    `validate:"gt=0"`
	Force          bool
	Format         string `validate:"oneof=human json yaml"`
}

// DefaultOptions returns options for verifying dir with built-in defaults
func DefaultOptions(dir string) *Options {
	return &Options{
		Directory:      dir,
		HashFile:       ResolveHashFile(dir, ""),
		Algorithm:      SHA1,
		Mode:           ModeVerify,
		Depth:          LastLevel,
		FollowSymlinks: true,
		Ignore:         NewIgnoreSet(),
		Jobs:           JobsAll,
		HashBuffer:     64 * 1024,
		Format:         DefaultFormat,
	}
}

// NewValidator creates a validator whose dir rule checks fs
func NewValidator(fs afero.Fs) *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterValidation("dir", func(fl validator.FieldLevel) bool {
		exist, _ := afero.DirExists(fs, fl.Field().String())
		return exist
	})
	return v
}

// Validate checks the options against fs. Every failure is an *OptionsError.
func (o *Options) Validate(fs afero.Fs) error {
	if err := NewValidator(fs).Struct(o); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return &OptionsError{Err: describeValidation(o, verrs[0])}
		}
		return &OptionsError{Err: err}
	}

	if o.Algorithm.HexLen() == 0 {
		return &OptionsError{Err: fmt.Errorf("unsupported hash algorithm: %d", int(o.Algorithm))}
	}

	if o.Mode == ModeCreate && !o.Force {
		exists, err := afero.Exists(fs, o.HashFile)
		if err != nil {
			return &OptionsError{Err: fmt.Errorf("failed to check %s: %w", o.HashFile, err)}
		}
		if exists {
			return &OptionsError{Err: ErrOutputExists}
		}
	}

	return nil
}

func describeValidation(o *Options, fe validator.FieldError) error {
	switch fe.Field() {
	case "Directory":
		if fe.Tag() == "dir" {
			return fmt.Errorf("%q is not a directory", o.Directory)
		}
		return fmt.Errorf("a directory is required")
	case "Jobs":
		return fmt.Errorf("invalid number of jobs: %d", o.Jobs)
	case "Format":
		return fmt.Errorf("invalid output format %q (valid: human, json, yaml)", o.Format)
	case "HashBuffer":
		return fmt.Errorf("hash buffer must be positive")
	default:
		return fmt.Errorf("invalid %s: failed %q check", fe.Field(), fe.Tag())
	}
}

// SelfName is the hash table's own name as it appears in a scan of Directory
func (o *Options) SelfName() string {
	return filepath.Base(o.HashFile)
}

// ResolveHashFile returns file, or <dir>/<dirname>.hash when file is empty.
// A directory without a name component uses RootFallbackName.
func ResolveHashFile(dir, file string) string {
	if file != "" {
		return file
	}

	name := dirBaseName(dir)
	if name == "" {
		name = RootFallbackName(dir)
	}
	return filepath.Join(dir, name+HashFileExt)
}

func dirBaseName(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = filepath.Clean(dir)
	}
	base := filepath.Base(abs)
	if base == string(filepath.Separator) || base == "." || strings.HasSuffix(base, ":") || base == filepath.VolumeName(abs) {
		return ""
	}
	return base
}

// ParseJobs parses a jobs value: empty or "auto" mean JobsAll, -1 means
// unbounded, positive values are taken as is
func ParseJobs(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "auto") {
		return JobsAll, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid number of jobs %q: %w", s, err)
	}
	if n == 0 || n < JobsUnbounded {
		return 0, fmt.Errorf("invalid number of jobs: %d (use -1 for unbounded or a positive count)", n)
	}
	return n, nil
}

// WorkerLimit converts a jobs value into an errgroup limit
func WorkerLimit(jobs int) int {
	switch {
	case jobs == JobsUnbounded:
		return -1
	case jobs <= 0:
		return CPUCount()
	default:
		return jobs
	}
}

// CPUCount returns the number of logical CPUs
func CPUCount() int {
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}
