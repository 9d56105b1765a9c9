package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestXAddExplicitIDsStrictlyIncrease(t *testing.T) {
	s := newTestStore()
	id1, err := s.XAdd("stream", "1526985054069-0", []FieldValue{{"temperature", "36"}, {"humidity", "95"}})
	require.NoError(t, err)
	require.Equal(t, "1526985054069-0", id1.String())

	id2, err := s.XAdd("stream", "1526985054079-0", []FieldValue{{"temperature", "37"}, {"humidity", "94"}})
	require.NoError(t, err)
	require.Equal(t, "1526985054079-0", id2.String())

	_, err = s.XAdd("stream", "1526985054069-0", nil)
	require.ErrorIs(t, err, ErrXAddIDTooSmall)
}

func TestXAddRejectsZero(t *testing.T) {
	s := newTestStore()
	_, err := s.XAdd("stream", "0-0", nil)
	require.ErrorIs(t, err, ErrXAddIDZero)
}

func TestXAddPartialAutoZero(t *testing.T) {
	s := newTestStore()
	id, err := s.XAdd("stream", "0-*", []FieldValue{{"f", "v"}})
	require.NoError(t, err)
	require.Equal(t, StreamID{Ms: 0, Seq: 1}, id)

	id2, err := s.XAdd("stream", "0-*", nil)
	require.NoError(t, err)
	require.Equal(t, StreamID{Ms: 0, Seq: 2}, id2)
}

func TestXAddPartialAutoSameMs(t *testing.T) {
	s := newTestStore()
	_, err := s.XAdd("stream", "5-2", nil)
	require.NoError(t, err)
	id, err := s.XAdd("stream", "5-*", nil)
	require.NoError(t, err)
	require.Equal(t, StreamID{Ms: 5, Seq: 3}, id)
}

func TestXAddInvalidID(t *testing.T) {
	s := newTestStore()
	tests := []string{"abc", "1-2-3", "-1-2", "1-", "1-abc"}
	for _, raw := range tests {
		_, err := s.XAdd("stream", raw, nil)
		require.ErrorIs(t, err, ErrInvalidStreamID, "raw=%q", raw)
	}
}

func TestXRangeInclusiveBounds(t *testing.T) {
	s := newTestStore()
	_, err := s.XAdd("test", "1526985054069-0", []FieldValue{{"temperature", "36"}, {"humidity", "95"}})
	require.NoError(t, err)
	_, err = s.XAdd("test", "1526985054079-0", []FieldValue{{"temperature", "37"}, {"humidity", "94"}})
	require.NoError(t, err)

	entries, nullBulk, err := s.XRange("test", "1526985054069", "1526985054079", 0, false)
	require.NoError(t, err)
	require.False(t, nullBulk)
	require.Len(t, entries, 2)
	require.Equal(t, "1526985054069-0", entries[0].ID.String())
	require.Equal(t, "1526985054079-0", entries[1].ID.String())
}

func TestXRangeSentinels(t *testing.T) {
	s := newTestStore()
	_, _ = s.XAdd("s", "5-1", nil)
	_, _ = s.XAdd("s", "5-2", nil)

	entries, _, err := s.XRange("s", "-", "+", 0, false)
	require.NoError(t, err)
	require.Len(t, entries, 2)
}

func TestXRangeCountZeroOrNegativeIsNullBulk(t *testing.T) {
	s := newTestStore()
	_, _ = s.XAdd("s", "5-1", nil)
	_, nullBulk, err := s.XRange("s", "-", "+", 0, true)
	require.NoError(t, err)
	require.True(t, nullBulk)

	_, nullBulk, err = s.XRange("s", "-", "+", -3, true)
	require.NoError(t, err)
	require.True(t, nullBulk)
}

func TestXRangeMissingKeyIsEmpty(t *testing.T) {
	s := newTestStore()
	entries, nullBulk, err := s.XRange("missing", "-", "+", 0, false)
	require.NoError(t, err)
	require.False(t, nullBulk)
	require.Empty(t, entries)
}

func TestXAddWrongType(t *testing.T) {
	s := newTestStore()
	s.Set("k", "v", nil)
	_, err := s.XAdd("k", "*", nil)
	require.ErrorIs(t, err, ErrWrongType)
}
