package decide_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/memo/internal/core/domain"
	"go.trai.ch/memo/internal/engine/decide"
)

var (
	digestX = domain.DigestBytes([]byte("X"))
	digestY = domain.DigestBytes([]byte("Y"))
	digestZ = domain.DigestBytes([]byte("Z"))
)

func scenarioCall() domain.Call {
	return domain.Call{
		WorkingDir: "/work",
		Inputs:     []string{"data.json", "analysis.py"},
		Outputs:    []string{"result.json"},
		Command:    []string{"python3", "analysis.py"},
	}
}

func scenarioRecord() *domain.CacheRecord {
	rec := domain.NewCacheRecord(scenarioCall(),
		[]domain.FileDigest{digestX, digestY},
		[]domain.FileDigest{digestZ},
		time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	)
	return &rec
}

func TestDecide_NoRecord(t *testing.T) {
	t.Parallel()

	d := decide.Decide(scenarioCall(), nil,
		[]domain.FileDigest{digestX, digestY},
		[]domain.FileDigest{domain.AbsentDigest},
	)
	assert.True(t, d.Run)
	assert.Equal(t, decide.ReasonNoRecord, d.Reason)
}

func TestDecide_AllMatch(t *testing.T) {
	t.Parallel()

	d := decide.Decide(scenarioCall(), scenarioRecord(),
		[]domain.FileDigest{digestX, digestY},
		[]domain.FileDigest{digestZ},
	)
	assert.False(t, d.Run)
	assert.Equal(t, decide.ReasonUpToDate, d.Reason)
}

func TestDecide_InputChanged(t *testing.T) {
	t.Parallel()

	changed := domain.DigestBytes([]byte("X'"))
	d := decide.Decide(scenarioCall(), scenarioRecord(),
		[]domain.FileDigest{changed, digestY},
		[]domain.FileDigest{digestZ},
	)
	assert.True(t, d.Run)
	assert.Equal(t, decide.ReasonInputChanged, d.Reason)
	assert.Equal(t, "data.json", d.Path)
}

func TestDecide_OutputDeleted(t *testing.T) {
	t.Parallel()

	// Recorded content digest vs currently absent file must mismatch.
	d := decide.Decide(scenarioCall(), scenarioRecord(),
		[]domain.FileDigest{digestX, digestY},
		[]domain.FileDigest{domain.AbsentDigest},
	)
	assert.True(t, d.Run)
	assert.Equal(t, decide.ReasonOutputChanged, d.Reason)
	assert.Equal(t, "result.json", d.Path)
}

func TestDecide_OutputRecreatedIdentically(t *testing.T) {
	t.Parallel()

	// A deleted output recreated byte for byte is unchanged: only content
	// matters, not the file's identity or timestamps.
	d := decide.Decide(scenarioCall(), scenarioRecord(),
		[]domain.FileDigest{digestX, digestY},
		[]domain.FileDigest{domain.DigestBytes([]byte("Z"))},
	)
	assert.False(t, d.Run)
}

func TestDecide_RecordShapeMismatch(t *testing.T) {
	t.Parallel()

	rec := scenarioRecord()
	rec.Inputs = rec.Inputs[:1]

	d := decide.Decide(scenarioCall(), rec,
		[]domain.FileDigest{digestX, digestY},
		[]domain.FileDigest{digestZ},
	)
	assert.True(t, d.Run)
	assert.Equal(t, decide.ReasonShapeChanged, d.Reason)
}

func TestDecide_RecordPathMismatch(t *testing.T) {
	t.Parallel()

	rec := scenarioRecord()
	rec.Inputs[1].Path = "renamed.py"

	d := decide.Decide(scenarioCall(), rec,
		[]domain.FileDigest{digestX, digestY},
		[]domain.FileDigest{digestZ},
	)
	assert.True(t, d.Run)
	assert.Equal(t, decide.ReasonShapeChanged, d.Reason)
}

func TestDecide_AbsentInputsMatch(t *testing.T) {
	t.Parallel()

	// Declared inputs that never existed still match a record that recorded
	// them as absent.
	call := domain.Call{
		WorkingDir: "/work",
		Inputs:     []string{"optional.cfg"},
		Command:    []string{"true"},
	}
	rec := domain.NewCacheRecord(call, []domain.FileDigest{domain.AbsentDigest}, nil, time.Now())

	d := decide.Decide(call, &rec, []domain.FileDigest{domain.AbsentDigest}, nil)
	assert.False(t, d.Run)
}
