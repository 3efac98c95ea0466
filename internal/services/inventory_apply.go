package services

import (
	"fmt"

	"busops/internal/domain"
	"busops/internal/domain/models"
	"busops/internal/utils"
)

// applySeatDelta computes the updated segment array for one adjustment: the
// delta lands on the target segment and on every other segment whose stop
// range overlaps it, clamped to [0, capacity]. Segments whose endpoints do
// not resolve against the stop sequence are skipped with a warning so one
// malformed legacy segment cannot block seat accounting for the rest of the
// trip; an unresolvable target segment is surfaced instead.
func applySeatDelta(requestID string, stops []string, segments []models.Segment, targetIndex, delta, capacity int) ([]models.Segment, error) {
	targetSpan, err := resolveSpan(stops, segments[targetIndex])
	if err != nil {
		return nil, err
	}

	out := make([]models.Segment, len(segments))
	copy(out, segments)

	for i := range out {
		span, err := resolveSpan(stops, out[i])
		if err != nil {
			utils.LogEvent(requestID, "inventory", "skip_segment",
				fmt.Sprintf("segment_index=%d %v", out[i].Index, err))
			continue
		}
		if span.Overlaps(targetSpan) {
			out[i].AvailableSeats = domain.ClampSeats(out[i].AvailableSeats+delta, capacity)
		}
	}
	return out, nil
}

func resolveSpan(stops []string, seg models.Segment) (domain.SegmentSpan, error) {
	start, ok := domain.ResolvePosition(stops, seg.Origin)
	if !ok {
		return domain.SegmentSpan{}, domain.RouteResolutionError{Location: seg.Origin}
	}
	end, ok := domain.ResolvePosition(stops, seg.Destination)
	if !ok {
		return domain.SegmentSpan{}, domain.RouteResolutionError{Location: seg.Destination}
	}
	return domain.NewSegmentSpan(start, end)
}
