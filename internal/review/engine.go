// Package review orchestrates the pipeline behind every request: acquire a
// snapshot, optionally detect changes against a base ref, then score, clip
// and rank the candidate files.
package review

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/sprite-ai/mergemate/internal/diffx"
	"github.com/sprite-ai/mergemate/internal/gitx"
	"github.com/sprite-ai/mergemate/internal/model"
	"github.com/sprite-ai/mergemate/internal/scan"
)

// Progress stages reported while a review runs.
const (
	StageAcquire = "acquire"
	StageDiff    = "diff"
	StageScan    = "scan"
	StageDone    = "done"
)

// Progress receives stage updates during a review. Implementations must
// not block; they are called inline from the pipeline.
type Progress func(stage, detail string)

// Source acquires repository snapshots and change sets. Satisfied by
// *gitx.Client.
type Source interface {
	Acquire(ctx context.Context, repoURL, ref string) (*gitx.Snapshot, error)
	Changes(ctx context.Context, snap *gitx.Snapshot, baseRef string) ([]string, string, error)
}

// Engine runs reviews against a Source. Engines are stateless between
// requests; every call allocates and tears down its own workspace.
type Engine struct {
	source Source
	log    zerolog.Logger
}

// New returns an Engine backed by source.
func New(source Source, log zerolog.Logger) *Engine {
	return &Engine{source: source, log: log}
}

// Review runs the full pipeline for one request.
func (e *Engine) Review(ctx context.Context, req model.ReviewRequest, progress Progress) (*model.ReviewResult, error) {
	if progress == nil {
		progress = func(string, string) {}
	}
	if err := validateReview(&req); err != nil {
		return nil, err
	}

	start := time.Now()
	progress(StageAcquire, req.RepoURL+" @ "+req.Ref)

	snap, err := e.source.Acquire(ctx, req.RepoURL, req.Ref)
	if err != nil {
		return nil, err
	}
	defer snap.Close()

	e.log.Debug().
		Str("repo", req.RepoURL).
		Str("ref", snap.Ref).
		Int64("size_bytes", snap.SizeBytes).
		Msg("snapshot acquired")

	result := &model.ReviewResult{
		RepoURL: req.RepoURL,
		Ref:     req.Ref,
		BaseRef: req.BaseRef,
		Mode:    model.ModeKeywords,
	}

	var changed []string
	if req.BaseRef != "" {
		progress(StageDiff, req.BaseRef+".."+req.Ref)
		names, raw, err := e.source.Changes(ctx, snap, req.BaseRef)
		if err != nil {
			return nil, err
		}
		if names == nil {
			names = []string{}
		}
		result.Mode = model.ModeDiff
		result.ChangedFiles = names
		result.ChangedStats = e.changeStats(raw)
		changed = names
	}

	progress(StageScan, fmt.Sprintf("%d keywords", len(req.Keywords)))
	relevant, err := scan.Relevant(snap.Dir, scan.Options{
		Keywords: req.Keywords,
		Changed:  changed,
		Exclude:  req.Exclude,
		MaxFiles: req.MaxFiles,
		Radius:   req.SnippetRadius,
	})
	if err != nil {
		return nil, err
	}
	result.Relevant = relevant

	e.log.Info().
		Str("repo", req.RepoURL).
		Str("ref", req.Ref).
		Str("mode", string(result.Mode)).
		Int("relevant", len(relevant)).
		Dur("elapsed", time.Since(start)).
		Msg("review complete")
	progress(StageDone, fmt.Sprintf("%d relevant files", len(relevant)))

	return result, nil
}

// FetchFile returns one file's text content at a ref.
func (e *Engine) FetchFile(ctx context.Context, req model.FileRequest) (*model.FileContent, error) {
	if err := validateFile(&req); err != nil {
		return nil, err
	}
	maxBytes := req.MaxBytes
	if maxBytes <= 0 {
		maxBytes = model.DefaultFileMaxBytes
	}

	snap, err := e.source.Acquire(ctx, req.RepoURL, req.Ref)
	if err != nil {
		return nil, err
	}
	defer snap.Close()

	abs, fi, err := snap.FileAt(req.Path)
	if err != nil {
		return nil, err
	}
	if scan.IsBinaryPath(req.Path) {
		return nil, &BinaryFileError{Path: req.Path}
	}
	if fi.Size() > int64(maxBytes) {
		return nil, &FileTooLargeError{Path: req.Path, SizeBytes: fi.Size(), MaxBytes: int64(maxBytes)}
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", req.Path, err)
	}
	content := scan.DecodeText(data)

	e.log.Debug().
		Str("repo", req.RepoURL).
		Str("ref", req.Ref).
		Str("path", req.Path).
		Int("bytes", len(content)).
		Msg("file fetched")

	return &model.FileContent{Path: req.Path, Bytes: len(content), Content: content}, nil
}

// changeStats parses the raw unified diff into per-file counts. The stats
// are a best-effort supplement: any parse trouble just drops them.
func (e *Engine) changeStats(raw string) []model.FileChange {
	if raw == "" {
		return nil
	}
	cs, err := diffx.Parse(raw)
	if err != nil || len(cs.Changes) == 0 {
		return nil
	}

	files, added, deleted := cs.Stats()
	e.log.Debug().
		Int("files", files).
		Int("added", added).
		Int("deleted", deleted).
		Msg("change stats parsed")

	stats := make([]model.FileChange, 0, len(cs.Changes))
	for _, c := range cs.Changes {
		stats = append(stats, model.FileChange{
			Path:         c.Path(),
			AddedLines:   c.Added,
			DeletedLines: c.Deleted,
			IsNew:        c.IsNew,
			IsDeleted:    c.IsDeleted,
			IsRenamed:    c.IsRenamed,
		})
	}
	return stats
}
