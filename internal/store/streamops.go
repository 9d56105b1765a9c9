package store

import "time"

// XAdd appends one entry to the stream at key, creating the stream if
// absent, generating its ID per spec.md §4.3.3. rawID is the unparsed ID
// specification argument (explicit, partial-auto, or fully-auto).
func (s *Store) XAdd(key, rawID string, fields []FieldValue) (StreamID, error) {
	spec, err := parseIDSpec(rawID)
	if err != nil {
		return StreamID{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.lookup(key)
	if e == nil {
		e = newEntry(KindStream)
		s.data[key] = e
	} else if e.kind != KindStream {
		return StreamID{}, ErrWrongType
	}

	id, err := e.stream.nextID(spec, nowMillis)
	if err != nil {
		return StreamID{}, err
	}
	e.stream.append(id, fields)
	return id, nil
}

func nowMillis() uint64 {
	return uint64(time.Now().UnixMilli())
}

// XRange returns entries in [start,end], inclusive, honoring sentinel
// bounds "-"/"+" and bare-ms forms (spec.md §4.3.3). count <= 0 reports
// hasNullBulk=true per the compatibility choice spec.md preserves; a
// missing key or non-stream variant returns an empty, non-null result.
func (s *Store) XRange(key, start, end string, count int, countGiven bool) (entries []StreamEntry, hasNullBulk bool, err error) {
	if countGiven && count <= 0 {
		return nil, true, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.lookup(key)
	if e == nil || e.kind != KindStream {
		return nil, false, nil
	}

	startID, err := parseRangeStart(start)
	if err != nil {
		return nil, false, err
	}
	endID, err := parseRangeEnd(end, e.stream)
	if err != nil {
		return nil, false, err
	}

	effCount := 0
	if countGiven {
		effCount = count
	}
	return e.stream.xrange(startID, endID, effCount), false, nil
}
