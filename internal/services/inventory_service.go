package services

import (
	"database/sql"
	"errors"
	"time"

	intconfig "busops/internal/config"
	intdb "busops/internal/db"
	"busops/internal/domain"
	"busops/internal/repositories"

	"github.com/go-sql-driver/mysql"
)

const (
	maxAdjustRetries = 3
	adjustRetryPause = 25 * time.Millisecond
)

// InventoryService owns all writes to the segment seat inventory. Reservation
// and package subsystems call ReserveSeats/ReleaseSeats; everything else reads.
type InventoryService struct {
	TripRepo  repositories.TripRepository
	RouteRepo repositories.RouteRepository
	DB        *sql.DB
	RequestID string
}

func (s InventoryService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s InventoryService) trips() repositories.TripRepository {
	if s.TripRepo.DB != nil {
		return s.TripRepo
	}
	return repositories.TripRepository{DB: s.db()}
}

func (s InventoryService) routes() repositories.RouteRepository {
	if s.RouteRepo.DB != nil {
		return s.RouteRepo
	}
	return repositories.RouteRepository{DB: s.db()}
}

// ValidateSeatAvailability answers whether the segment behind tripKey can
// satisfy requestedSeats right now. Pure read, reserves nothing; callers must
// still ReserveSeats afterwards. The key is taken as-is: padding or any other
// deviation from "<recordId>_<segmentIndex>" is malformed.
func (s InventoryService) ValidateSeatAvailability(tripKey string, requestedSeats int) error {
	if requestedSeats <= 0 {
		return domain.ValidationError{Field: "seats", Msg: "jumlah kursi harus lebih dari 0"}
	}
	recordID, index, err := domain.ParseSegmentKey(tripKey)
	if err != nil {
		return err
	}
	seg, err := s.trips().GetSegment(recordID, index)
	if err != nil {
		return err
	}
	if requestedSeats > seg.AvailableSeats {
		return domain.InsufficientSeatsError{Requested: requestedSeats, Available: seg.AvailableSeats}
	}
	return nil
}

// ReserveSeats consumes seats on a segment and every segment overlapping it.
// The target's remaining count is re-checked under the trip lock.
func (s InventoryService) ReserveSeats(recordID int64, segmentIndex, seats int) error {
	if seats <= 0 {
		return domain.ValidationError{Field: "seats", Msg: "jumlah kursi harus lebih dari 0"}
	}
	return s.adjust(recordID, segmentIndex, -seats)
}

// ReleaseSeats returns seats after a cancellation; the clamp in propagation
// keeps a duplicate release from pushing any segment above capacity.
func (s InventoryService) ReleaseSeats(recordID int64, segmentIndex, seats int) error {
	if seats <= 0 {
		return domain.ValidationError{Field: "seats", Msg: "jumlah kursi harus lebih dari 0"}
	}
	return s.adjust(recordID, segmentIndex, seats)
}

// TransferSeats moves seats from one segment to another (same or different
// trip). The target is validated before the source is released.
func (s InventoryService) TransferSeats(fromRecordID int64, fromIndex int, toRecordID int64, toIndex int, seats int) error {
	if seats <= 0 {
		return domain.ValidationError{Field: "seats", Msg: "jumlah kursi harus lebih dari 0"}
	}
	if fromRecordID == toRecordID && fromIndex == toIndex {
		return domain.ValidationError{Field: "segment", Msg: "segment asal dan tujuan sama"}
	}
	if err := s.ValidateSeatAvailability(domain.SegmentKey(toRecordID, toIndex), seats); err != nil {
		return err
	}
	if err := s.adjust(fromRecordID, fromIndex, seats); err != nil {
		return err
	}
	if err := s.adjust(toRecordID, toIndex, -seats); err != nil {
		// put the source back so the inventory stays explainable
		if rbErr := s.adjust(fromRecordID, fromIndex, -seats); rbErr != nil {
			return domain.InternalError{Msg: "transfer gagal dan rollback sumber ikut gagal", Err: errors.Join(err, rbErr)}
		}
		return err
	}
	return nil
}

// adjust retries the single read-modify-write cycle a bounded number of times
// when the trip row lock is contended, then surfaces a conflict.
func (s InventoryService) adjust(recordID int64, segmentIndex, delta int) error {
	var lastErr error
	for attempt := 0; attempt < maxAdjustRetries; attempt++ {
		err := s.adjustOnce(recordID, segmentIndex, delta)
		if err == nil {
			return nil
		}
		if !isLockError(err) {
			return err
		}
		lastErr = err
		time.Sleep(time.Duration(attempt+1) * adjustRetryPause)
	}
	return domain.ConflictError{Resource: "trip", Msg: "inventory sedang dikunci, coba lagi", Err: lastErr}
}

func (s InventoryService) adjustOnce(recordID int64, segmentIndex, delta int) error {
	return intdb.WithTx(s.db(), func(tx *sql.Tx) error {
		trip, err := s.trips().LockTripRecord(tx, recordID)
		if err != nil {
			return err
		}
		segments, err := s.trips().SegmentsTx(tx, recordID)
		if err != nil {
			return domain.InternalError{Err: err}
		}
		if segmentIndex < 0 || segmentIndex >= len(segments) {
			return domain.SegmentRangeError{RecordID: recordID, Index: segmentIndex, Count: len(segments)}
		}
		// validasi awal jalan tanpa lock; cek ulang di sini supaya dua
		// booking yang balapan tidak sama-sama lolos
		if delta < 0 && segments[segmentIndex].AvailableSeats+delta < 0 {
			return domain.InsufficientSeatsError{Requested: -delta, Available: segments[segmentIndex].AvailableSeats}
		}

		stops, err := s.routes().GetStopSequence(trip.RouteID)
		if err != nil {
			return err
		}

		updated, err := applySeatDelta(s.RequestID, stops, segments, segmentIndex, delta, trip.Capacity)
		if err != nil {
			return err
		}
		return s.trips().WriteSegments(tx, recordID, updated)
	})
}

// isLockError recognizes InnoDB deadlock (1213) and lock wait timeout (1205).
func isLockError(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1213 || myErr.Number == 1205
	}
	return false
}
