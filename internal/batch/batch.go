// Package batch exports many QR codes concurrently from a YAML job list.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/Mictilt/qrdx"
	"github.com/Mictilt/qrdx/internal/config"
	"github.com/Mictilt/qrdx/internal/logger"
	"github.com/Mictilt/qrdx/style"
	"github.com/Mictilt/qrdx/writer/standard"
)

var ErrDuplicateFilename = errors.New("duplicate filename")

// Job is one entry of a job file.
type Job struct {
	Payload string       `yaml:"payload"`
	Preset  string       `yaml:"preset,omitempty"`
	Style   style.Config `yaml:"style,omitempty"`
	Format  string       `yaml:"format,omitempty"`
	// Size is a preset size name, a side or WxH.
	Size     string `yaml:"size,omitempty"`
	Filename string `yaml:"filename,omitempty"`
}

// Result reports one job. Err is set when the job failed or was never
// started because the context ended.
type Result struct {
	Index    int
	Job      Job
	Path     string
	Artifact *qrdx.Artifact
	Err      error
}

// ParseJobs decodes a YAML list of jobs.
func ParseJobs(data []byte) ([]Job, error) {
	var jobs []Job
	if err := yaml.Unmarshal(data, &jobs); err != nil {
		return nil, errors.Wrap(err, "parse jobs")
	}
	return jobs, nil
}

func LoadJobs(path string) ([]Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read jobs")
	}
	return ParseJobs(data)
}

type Runner struct {
	Config *config.Config
	OutDir string
	// Concurrency bounds the exports in flight, 0 means one per job.
	Concurrency int
	// AllowFiles lets job styles reference logo files, not only named logos.
	AllowFiles bool
	Log        *logger.Logger
}

// Run exports jobs into OutDir. Failing jobs do not stop the others, their
// errors are in the results. When ctx ends no new job starts, the ones in
// flight finish, and ctx.Err() is returned.
func (r *Runner) Run(ctx context.Context, jobs []Job) ([]Result, error) {
	log := r.Log
	if log == nil {
		log = logger.Nop()
	}
	if err := os.MkdirAll(r.OutDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create output dir")
	}
	if err := checkFilenames(jobs); err != nil {
		return nil, err
	}

	results := make([]Result, len(jobs))
	for i, job := range jobs {
		results[i] = Result{Index: i, Job: job, Err: context.Canceled}
	}

	g := new(errgroup.Group)
	if r.Concurrency > 0 {
		g.SetLimit(r.Concurrency)
	}
	for i := range jobs {
		if ctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			res := &results[i]
			res.Path, res.Artifact, res.Err = r.export(i, res.Job, log)
			if res.Err != nil {
				log.Warnw("job failed", "job", i+1, "error", res.Err)
			} else {
				log.Debugw("job written", "job", i+1, "file", res.Path, "version", res.Artifact.Version)
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		for i := range results {
			if results[i].Err == context.Canceled {
				results[i].Err = err
			}
		}
		return results, err
	}
	return results, nil
}

func (r *Runner) export(i int, job Job, log *logger.Logger) (string, *qrdx.Artifact, error) {
	cfg, err := r.Config.Style(job.Preset, job.Style)
	if err != nil {
		return "", nil, err
	}

	size := standard.Square(style.DefaultDefaults().Size)
	if cfg.Size > 0 {
		size = standard.Square(cfg.Size)
	}
	if job.Size != "" {
		if size, err = standard.ParseSize(job.Size); err != nil {
			return "", nil, err
		}
	}
	art, err := qrdx.ExportArtifact(job.Payload, cfg, standard.Format(formatOf(job)), size,
		qrdx.WithFilename(filenameFor(i, job)),
		qrdx.WithLogoLoader(r.Config.LogoLoader(r.AllowFiles)),
		qrdx.WithLogger(log.Zap()),
	)
	if err != nil {
		return "", nil, err
	}

	path := filepath.Join(r.OutDir, art.Filename)
	if err = writeAtomic(path, art.Data); err != nil {
		return "", nil, err
	}
	return path, art, nil
}

func formatOf(job Job) string {
	if strings.TrimSpace(job.Format) == "" {
		return string(standard.FormatPNG)
	}
	return job.Format
}

// filenameFor keeps only the base name so jobs cannot write outside the
// output directory.
func filenameFor(i int, job Job) string {
	name := strings.TrimSpace(job.Filename)
	if name == "" {
		return fmt.Sprintf("qr-%03d", i+1)
	}
	return filepath.Base(name)
}

// checkFilenames refuses explicit names that would overwrite each other.
func checkFilenames(jobs []Job) error {
	seen := make(map[string]int, len(jobs))
	for i, job := range jobs {
		if strings.TrimSpace(job.Filename) == "" {
			continue
		}
		name := filenameFor(i, job)
		if filepath.Ext(name) == "" {
			if f, err := standard.ParseFormat(formatOf(job)); err == nil {
				name += "." + f.Extension()
			}
		}
		if first, ok := seen[name]; ok {
			return errors.Wrapf(ErrDuplicateFilename, "%q in jobs %d and %d", name, first+1, i+1)
		}
		seen[name] = i
	}
	return nil
}

// writeAtomic writes data next to path and renames it into place, so a
// file at path is always complete.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".qrdx-*")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "write")
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrap(err, "sync")
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "close")
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return errors.Wrap(err, "chmod")
	}
	return errors.Wrap(os.Rename(tmp.Name(), path), "rename")
}
