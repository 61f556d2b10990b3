package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/five82/foodlens/internal/foodlens"
	"github.com/five82/foodlens/internal/imagefile"
	"github.com/five82/foodlens/internal/state"
)

// ErrSuperseded is returned by AnalyzeFile when a newer selection replaced
// the image while the request was in flight.
var ErrSuperseded = errors.New("analysis superseded by a newer selection")

// AnalyzeFile runs one select, analyze, settle cycle through store without a
// UI. An empty path analyzes whatever is already selected. The returned
// snapshot is the settled state; err is non-nil whenever the snapshot is not
// in PhaseResultReady.
func AnalyzeFile(ctx context.Context, analyzer foodlens.Analyzer, store *state.Store, path string, log logrus.FieldLogger) (state.Snapshot, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	if path != "" {
		img, err := imagefile.Open(path)
		if err != nil {
			log.WithError(err).WithField("path", path).Warn("image rejected")
			return store.Snapshot(), fmt.Errorf("select image: %w", err)
		}
		store.Select(img, nil)
	}

	ticket, err := store.BeginAnalysis()
	if err != nil {
		log.WithError(err).Info("analysis not started")
		return store.Snapshot(), err
	}

	entry := log.WithFields(logrus.Fields{"seq": ticket.Seq, "file": ticket.Image.Name})
	result, err := analyzer.Analyze(ctx, ticket.Image.Upload())
	if !store.Settle(ticket, result, err) {
		entry.Info("stale analysis result ignored")
		return store.Snapshot(), ErrSuperseded
	}

	snap := store.Snapshot()
	if snap.Phase != state.PhaseResultReady {
		entry.WithError(snap.Err).WithField("kind", foodlens.KindOf(snap.Err)).Warn("analysis failed")
		return snap, snap.Err
	}
	entry.WithField("food_name", snap.Result.FoodName).Info("analysis result ready")
	return snap, nil
}
