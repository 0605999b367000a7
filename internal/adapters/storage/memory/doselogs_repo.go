package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"medication-adherence/internal/domain/adherence"
)

// doseLogsRepo indexa por la clave natural (medicationID, logDate, logTime):
// el map es la unicidad. Un Insert repetido no pisa ni duplica nada.
type doseLogsRepo struct {
	mu    sync.Mutex
	byKey map[string]adherence.DoseLog
}

func NewDoseLogsRepo() adherence.Repository {
	return &doseLogsRepo{
		byKey: make(map[string]adherence.DoseLog),
	}
}

func logKey(medicationID, logDate, logTime string) string {
	return medicationID + "|" + logDate + "|" + logTime
}

func (r *doseLogsRepo) Insert(ctx context.Context, l adherence.DoseLog) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(l.ID) == "" {
		return false, errors.New("dose log id required")
	}
	if l.MedicationID == "" || l.LogDate == "" || l.LogTime == "" {
		return false, errors.New("dose log key fields required")
	}

	k := logKey(l.MedicationID, l.LogDate, l.LogTime)
	if _, exists := r.byKey[k]; exists {
		return false, nil
	}

	r.byKey[k] = l
	return true, nil
}

func (r *doseLogsRepo) TakenTimes(ctx context.Context, medicationID, logDate string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0)
	for _, l := range r.byKey {
		if l.MedicationID == medicationID && l.LogDate == logDate && l.Status == adherence.DoseStatusTaken {
			out = append(out, l.LogTime)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *doseLogsRepo) ListByDate(ctx context.Context, medicationID, logDate string) ([]adherence.DoseLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]adherence.DoseLog, 0)
	for _, l := range r.byKey {
		if l.MedicationID == medicationID && l.LogDate == logDate {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LogTime < out[j].LogTime
	})
	return out, nil
}

func (r *doseLogsRepo) DeleteByMedication(ctx context.Context, medicationID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for k, l := range r.byKey {
		if l.MedicationID == medicationID {
			delete(r.byKey, k)
		}
	}
	return nil
}
