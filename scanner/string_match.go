package scanner

import (
	"bytes"
	"regexp"
	"sync"

	lru "github.com/hashicorp/golang-lru"
)

// regexCacheSize bounds the process-wide compiled-regex cache. Bounded
// rather than unbounded because MATCH_REGEX values come from arbitrary user
// input across many scans in a long-running console session.
const regexCacheSize = 128

var (
	regexCacheOnce sync.Once
	regexCache     *lru.Cache
)

func getRegexCache() *lru.Cache {
	regexCacheOnce.Do(func() {
		regexCache, _ = lru.New(regexCacheSize)
	})
	return regexCache
}

// compileRegex compiles pattern, sharing compiled *regexp.Regexp instances
// across calls via a bounded LRU so a narrowing scan re-run with the same
// pattern doesn't recompile it once per memory region.
func compileRegex(pattern string) (*regexp.Regexp, error) {
	cache := getRegexCache()
	if v, ok := cache.Get(pattern); ok {
		return v.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	cache.Add(pattern, re)
	return re, nil
}

// MatchStringAt evaluates matchType against buf starting at offset 0.
// Byte-pattern and string matches scan at every offset, not just Mem64's
// fixed 8-byte numeric window, so this operates directly on the region's
// read buffer rather than going through the Routine/Mem64 factory path.
func MatchStringAt(buf []byte, matchType MatchType, uv *UserValue) (size int, matched bool) {
	switch matchType {
	case MatchAny:
		if len(buf) == 0 {
			return 0, false
		}
		return len(buf), true
	case MatchEqualTo:
		want := []byte(uv.Str())
		if len(want) == 0 || len(buf) < len(want) || !bytes.Equal(buf[:len(want)], want) {
			return 0, false
		}
		return len(want), true
	case MatchRegex:
		r, err := compileRegex(uv.Str())
		if err != nil {
			return 0, false
		}
		loc := r.FindIndex(buf)
		if loc == nil || loc[0] != 0 {
			return 0, false
		}
		return loc[1], true
	default:
		return 0, false
	}
}
