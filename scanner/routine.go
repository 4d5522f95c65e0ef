package scanner

// Routine is a single width/type-specialized matcher. It decodes cur (and,
// for old-value predicates, old) out of mem, evaluates the predicate, and
// either records the match width into saveFlags and returns the number of
// bytes consumed, or returns 0 for no match. saveFlags may be nil, in which
// case the routine still returns the correct match width.
type Routine func(mem, old Mem64, uv *UserValue, saveFlags *MatchFlags) int

func setFlag(saveFlags *MatchFlags, flag MatchFlags) {
	if saveFlags != nil {
		*saveFlags = saveFlags.Set(flag)
	}
}

// makeNumericRoutine builds a Routine fixed at a single width/type T.
func makeNumericRoutine[T numeric](matchType MatchType, reverse bool) Routine {
	return func(mem, old Mem64, uv *UserValue, saveFlags *MatchFlags) int {
		cur, ok := decodeNumeric[T](mem, reverse)
		if !ok {
			return 0
		}
		var oldPtr *T
		if matchType.UsesOldValue() {
			oldVal, ok := decodeNumeric[T](old, reverse)
			if !ok {
				return 0
			}
			oldPtr = &oldVal
		}
		if !numericMatchCore(matchType, cur, oldPtr, uv) {
			return 0
		}
		setFlag(saveFlags, widthFlagOf[T]())
		return sizeOfNumeric[T]()
	}
}

// makeAnyIntegerRoutine tries every integer width at the same address and
// reports a match (with every matching width flagged) if any width matches.
func makeAnyIntegerRoutine(matchType MatchType, reverse bool) Routine {
	widths := []struct {
		flag MatchFlags
		try  Routine
	}{
		{B8, makeNumericRoutine[uint8](matchType, reverse)},
		{B16, makeNumericRoutine[uint16](matchType, reverse)},
		{B32, makeNumericRoutine[uint32](matchType, reverse)},
		{B64, makeNumericRoutine[uint64](matchType, reverse)},
	}
	return func(mem, old Mem64, uv *UserValue, saveFlags *MatchFlags) int {
		best := 0
		for _, w := range widths {
			if uv != nil && uv.Flags() != Empty && !uv.Flags().Has(w.flag) {
				continue
			}
			if n := w.try(mem, old, uv, saveFlags); n > best {
				best = n
			}
		}
		return best
	}
}

// makeAnyFloatRoutine tries both float widths at the same address.
func makeAnyFloatRoutine(matchType MatchType, reverse bool) Routine {
	widths := []struct {
		flag MatchFlags
		try  Routine
	}{
		{F32, makeNumericRoutine[float32](matchType, reverse)},
		{F64, makeNumericRoutine[float64](matchType, reverse)},
	}
	return func(mem, old Mem64, uv *UserValue, saveFlags *MatchFlags) int {
		best := 0
		for _, w := range widths {
			if uv != nil && uv.Flags() != Empty && !uv.Flags().Has(w.flag) {
				continue
			}
			if n := w.try(mem, old, uv, saveFlags); n > best {
				best = n
			}
		}
		return best
	}
}

// makeAnyNumberRoutine tries every integer and float width at the address.
func makeAnyNumberRoutine(matchType MatchType, reverse bool) Routine {
	ints := makeAnyIntegerRoutine(matchType, reverse)
	floats := makeAnyFloatRoutine(matchType, reverse)
	return func(mem, old Mem64, uv *UserValue, saveFlags *MatchFlags) int {
		best := ints(mem, old, uv, saveFlags)
		if n := floats(mem, old, uv, saveFlags); n > best {
			best = n
		}
		return best
	}
}

func decodeNumeric[T numeric](m Mem64, reverse bool) (T, bool) {
	var zero T
	switch any(zero).(type) {
	case int8:
		v, ok := m.Int8()
		return T(v), ok
	case uint8:
		v, ok := m.Uint8()
		return T(v), ok
	case int16:
		v, ok := m.Int16(reverse)
		return T(v), ok
	case uint16:
		v, ok := m.Uint16(reverse)
		return T(v), ok
	case int32:
		v, ok := m.Int32(reverse)
		return T(v), ok
	case uint32:
		v, ok := m.Uint32(reverse)
		return T(v), ok
	case int64:
		v, ok := m.Int64(reverse)
		return T(v), ok
	case uint64:
		v, ok := m.Uint64(reverse)
		return T(v), ok
	case float32:
		v, ok := m.Float32(reverse)
		return T(v), ok
	case float64:
		v, ok := m.Float64(reverse)
		return T(v), ok
	default:
		return zero, false
	}
}

func widthFlagOf[T numeric]() MatchFlags {
	var zero T
	switch any(zero).(type) {
	case int8, uint8:
		return B8
	case int16, uint16:
		return B16
	case int32, uint32:
		return B32
	case int64, uint64:
		return B64
	case float32:
		return F32
	case float64:
		return F64
	default:
		return Empty
	}
}

func sizeOfNumeric[T numeric]() int {
	var zero T
	switch any(zero).(type) {
	case int8, uint8:
		return 1
	case int16, uint16:
		return 2
	case int32, uint32, float32:
		return 4
	case int64, uint64, float64:
		return 8
	default:
		return 0
	}
}
