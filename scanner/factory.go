package scanner

import "fmt"

// NewRoutine builds the matcher Routine for a scalar or aggregated numeric
// dataType. Bytes and String scan at every byte offset over a variable-length
// window rather than Mem64's fixed 8 bytes; callers scanning those types use
// MatchBytesAt/MatchStringAt directly instead of a Routine.
func NewRoutine(dataType Type, matchType MatchType, reverseEndian bool) (Routine, error) {
	switch dataType {
	case Int8:
		return makeNumericRoutine[int8](matchType, reverseEndian), nil
	case Int16:
		return makeNumericRoutine[int16](matchType, reverseEndian), nil
	case Int32:
		return makeNumericRoutine[int32](matchType, reverseEndian), nil
	case Int64:
		return makeNumericRoutine[int64](matchType, reverseEndian), nil
	case Uint8:
		return makeNumericRoutine[uint8](matchType, reverseEndian), nil
	case Uint16:
		return makeNumericRoutine[uint16](matchType, reverseEndian), nil
	case Uint32:
		return makeNumericRoutine[uint32](matchType, reverseEndian), nil
	case Uint64:
		return makeNumericRoutine[uint64](matchType, reverseEndian), nil
	case Float32:
		return makeNumericRoutine[float32](matchType, reverseEndian), nil
	case Float64:
		return makeNumericRoutine[float64](matchType, reverseEndian), nil
	case AnyInteger:
		return makeAnyIntegerRoutine(matchType, reverseEndian), nil
	case AnyFloat:
		return makeAnyFloatRoutine(matchType, reverseEndian), nil
	case AnyNumber:
		return makeAnyNumberRoutine(matchType, reverseEndian), nil
	case Bytes, String:
		return nil, fmt.Errorf("scanner: %s has no fixed-width Routine, scan it with MatchBytesAt/MatchStringAt", dataType)
	default:
		return nil, fmt.Errorf("scanner: unknown data type %v", dataType)
	}
}
