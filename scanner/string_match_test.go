package scanner

import "testing"

func TestMatchStringAtEqualTo(t *testing.T) {
	uv := NewStringValue("hello")
	size, matched := MatchStringAt([]byte("hello world"), MatchEqualTo, uv)
	if !matched || size != 5 {
		t.Fatalf("matched=%v size=%d, want true/5", matched, size)
	}

	if _, matched := MatchStringAt([]byte("goodbye"), MatchEqualTo, uv); matched {
		t.Fatal("expected mismatch")
	}
}

func TestMatchStringAtAny(t *testing.T) {
	size, matched := MatchStringAt([]byte("x"), MatchAny, nil)
	if !matched || size != 1 {
		t.Fatal("MATCH_ANY over a non-empty buffer should match")
	}
	if _, matched := MatchStringAt(nil, MatchAny, nil); matched {
		t.Fatal("MATCH_ANY over an empty buffer should not match")
	}
}

func TestMatchStringAtRegexAnchoredAtOffsetZero(t *testing.T) {
	uv := NewStringValue(`[a-z]+@[a-z]+\.com`)
	size, matched := MatchStringAt([]byte("bob@example.com;rest"), MatchRegex, uv)
	if !matched || size != len("bob@example.com") {
		t.Fatalf("matched=%v size=%d", matched, size)
	}

	// A regex that only matches mid-buffer must not match at offset 0.
	if _, matched := MatchStringAt([]byte("12bob@example.com"), MatchRegex, uv); matched {
		t.Fatal("regex must anchor at offset 0")
	}
}

func TestCompileRegexCachesCompiledPattern(t *testing.T) {
	re1, err := compileRegex(`^abc$`)
	if err != nil {
		t.Fatal(err)
	}
	re2, err := compileRegex(`^abc$`)
	if err != nil {
		t.Fatal(err)
	}
	if re1 != re2 {
		t.Fatal("expected the same compiled regexp instance to be returned from the cache")
	}
}

func TestCompileRegexRejectsInvalidPattern(t *testing.T) {
	if _, err := compileRegex(`(unclosed`); err == nil {
		t.Fatal("expected an error for an invalid regex")
	}
}
