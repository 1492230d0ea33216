package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// ── Value ──

func TestValue_EqualAndCompare(t *testing.T) {
	assert.True(t, Int(3).Equal(Number(3)))
	assert.False(t, Int(3).Equal(String("3")))
	assert.True(t, Null().Equal(Value{}))
	assert.True(t, Time(t0).Equal(Time(t0.In(time.FixedZone("X", 3600)))))

	cmp, ok := Int(3).Compare(Int(5))
	assert.True(t, ok)
	assert.Equal(t, -1, cmp)

	cmp, ok = Time(t0.Add(time.Second)).Compare(Time(t0))
	assert.True(t, ok)
	assert.Equal(t, 1, cmp)

	_, ok = Int(3).Compare(String("a"))
	assert.False(t, ok)

	_, ok = Bool(true).Compare(Bool(false))
	assert.False(t, ok)
}

func TestValue_JSON(t *testing.T) {
	values := []Value{Null(), String("chair"), Number(2.5), Bool(true), Time(t0)}
	for _, v := range values {
		t.Run(v.Kind().String(), func(t *testing.T) {
			data, err := json.Marshal(v)
			require.NoError(t, err)

			var got Value
			require.NoError(t, json.Unmarshal(data, &got))
			assert.True(t, v.Equal(got), "got %s, want %s", got, v)
		})
	}
}

func TestValue_UnmarshalUnknownKind(t *testing.T) {
	var v Value
	err := json.Unmarshal([]byte(`{"kind":"blob","value":1}`), &v)
	require.ErrorIs(t, err, ErrUnknownValueKind)
}

// ── Fields ──

func TestFields_WithDoesNotMutate(t *testing.T) {
	orig := NewFields(F("name", String("lamp")), F("quantity", Int(1)))
	next := orig.With("quantity", Int(2)).With("room", String("attic"))

	q, _ := orig.Get("quantity")
	assert.True(t, q.Equal(Int(1)))
	assert.False(t, orig.Has("room"))

	assert.Equal(t, []string{"name", "quantity", "room"}, next.Keys())
	q, _ = next.Get("quantity")
	assert.True(t, q.Equal(Int(2)))
}

func TestFields_UnionAndWithout(t *testing.T) {
	a := NewFields(F("a", Int(1)), F("b", Int(2)))
	b := NewFields(F("c", Int(3)), F("a", Int(10)))

	u := a.Union(b)
	assert.Equal(t, []string{"a", "b", "c"}, u.Keys())
	v, _ := u.Get("a")
	assert.True(t, v.Equal(Int(10)))

	w := u.Without("b")
	assert.Equal(t, []string{"a", "c"}, w.Keys())
	assert.Equal(t, 3, u.Len())
}

func TestFields_JSONKeepsOrder(t *testing.T) {
	f := NewFields(F("z", String("last?")), F("a", Int(1)), F("m", Time(t0)))

	data, err := json.Marshal(f)
	require.NoError(t, err)

	var got Fields
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, []string{"z", "a", "m"}, got.Keys())
	assert.True(t, f.Equal(got))
}

// ── SyncChange ──

func TestSyncChange_Validate(t *testing.T) {
	ok := NewSyncChange("item", "1", ActionUpdate, t0)
	require.NoError(t, ok.Validate())

	cases := map[string]SyncChange{
		"no id":     NewSyncChange("item", "", ActionUpdate, t0),
		"no type":   NewSyncChange("", "1", ActionUpdate, t0),
		"slash":     NewSyncChange("item/1", "2", ActionUpdate, t0),
		"bad act":   NewSyncChange("item", "1", "upsert", t0),
		"zero time": {RecordID: "1", RecordType: "item", Action: ActionCreate},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, c.Validate(), ErrInvalidChange)
		})
	}
}

func TestSyncChange_IsEcho(t *testing.T) {
	a := NewSyncChange("item", "1", ActionUpdate, t0, F("quantity", Int(3)))
	b := NewSyncChange("item", "1", ActionUpdate, t0, F("quantity", Int(3)))
	c := NewSyncChange("item", "1", ActionUpdate, t0, F("quantity", Int(4)))

	assert.True(t, a.IsEcho(b))
	assert.False(t, a.IsEcho(c))
	assert.False(t, a.IsEcho(b.WithFields(b.Fields, t0.Add(time.Second))))
}

func TestCoalesce(t *testing.T) {
	create := NewSyncChange("item", "1", ActionCreate, t0, F("name", String("desk")), F("quantity", Int(1)))
	update := NewSyncChange("item", "1", ActionUpdate, t0.Add(time.Minute), F("quantity", Int(4)))

	t.Run("create then update stays create", func(t *testing.T) {
		// порядок входных данных не важен
		got, err := Coalesce(update, create)
		require.NoError(t, err)
		assert.Equal(t, ActionCreate, got.Action)
		assert.True(t, got.Timestamp.Equal(update.Timestamp))
		q, _ := got.Fields.Get("quantity")
		assert.True(t, q.Equal(Int(4)))
		assert.True(t, got.Fields.Has("name"))
	})

	t.Run("delete wins", func(t *testing.T) {
		del := NewSyncChange("item", "1", ActionDelete, t0.Add(time.Hour))
		got, err := Coalesce(create, update, del)
		require.NoError(t, err)
		assert.Equal(t, ActionDelete, got.Action)
		assert.Equal(t, 0, got.Fields.Len())
	})

	t.Run("different records", func(t *testing.T) {
		other := NewSyncChange("item", "2", ActionUpdate, t0)
		_, err := Coalesce(create, other)
		assert.ErrorIs(t, err, ErrInvalidChange)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := Coalesce()
		assert.ErrorIs(t, err, ErrInvalidChange)
	})
}

// ── Conflicts ──

func TestConflictResolution_Invariant(t *testing.T) {
	local := NewSyncChange("item", "1", ActionUpdate, t0, F("quantity", Int(3)))
	remote := NewSyncChange("item", "1", ActionUpdate, t0, F("quantity", Int(5)))
	c, err := NewSyncConflict(local, remote)
	require.NoError(t, err)

	assert.NoError(t, UseLocal(c).Validate())
	assert.NoError(t, UseRemote(c).Validate())
	assert.Equal(t, remote, UseRemote(c).Winner())

	merged := remote.WithFields(remote.Fields, t0.Add(time.Second))
	m := Merge(c, &merged)
	assert.NoError(t, m.Validate())
	assert.Equal(t, merged, m.Winner())

	degraded := Merge(c, nil)
	assert.Equal(t, StrategyUseLocal, degraded.Strategy)

	bad := ConflictResolution{Strategy: StrategyUseLocal, MergedChange: &merged}
	assert.ErrorIs(t, bad.Validate(), ErrInvalidResolution)

	_, err = NewSyncConflict(local, NewSyncChange("item", "2", ActionUpdate, t0))
	assert.ErrorIs(t, err, ErrConflictMismatch)
}
