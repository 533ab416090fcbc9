package security

import (
	"strings"
	"testing"
)

// TestSanitize_AllowsBasicFormatting は許可リストのタグが通過することを検証する。
func TestSanitize_AllowsBasicFormatting(t *testing.T) {
	s := NewContentSanitizer()

	input := "<p>hello <strong>world</strong></p><ul><li>item</li></ul>"
	got := s.Sanitize(input)

	if got != input {
		t.Errorf("Sanitize() = %q, want %q", got, input)
	}
}

// TestSanitize_StripsScriptTags はscriptタグとその内容が除去されることを検証する。
func TestSanitize_StripsScriptTags(t *testing.T) {
	s := NewContentSanitizer()

	got := s.Sanitize(`<p>safe</p><script>alert("xss")</script>`)

	if strings.Contains(got, "script") || strings.Contains(got, "alert") {
		t.Errorf("Sanitize() = %q, script content should be removed", got)
	}
	if !strings.Contains(got, "<p>safe</p>") {
		t.Errorf("Sanitize() = %q, safe content should survive", got)
	}
}

// TestSanitize_StripsEventAttributes はon*イベント属性が除去されることを検証する。
func TestSanitize_StripsEventAttributes(t *testing.T) {
	s := NewContentSanitizer()

	got := s.Sanitize(`<p onclick="steal()">text</p>`)

	if strings.Contains(got, "onclick") {
		t.Errorf("Sanitize() = %q, event attribute should be removed", got)
	}
}

// TestSanitize_StripsIframe はiframeタグが除去されることを検証する。
func TestSanitize_StripsIframe(t *testing.T) {
	s := NewContentSanitizer()

	got := s.Sanitize(`<iframe src="https://evil.example"></iframe><p>ok</p>`)

	if strings.Contains(got, "iframe") {
		t.Errorf("Sanitize() = %q, iframe should be removed", got)
	}
}

// TestSanitize_AddsTargetBlankToLinks は完全修飾リンクにtarget=_blankが付与されることを検証する。
func TestSanitize_AddsTargetBlankToLinks(t *testing.T) {
	s := NewContentSanitizer()

	got := s.Sanitize(`<a href="https://example.com/post">link</a>`)

	if !strings.Contains(got, `href="https://example.com/post"`) {
		t.Errorf("Sanitize() = %q, href should survive", got)
	}
	if !strings.Contains(got, `target="_blank"`) {
		t.Errorf("Sanitize() = %q, target=_blank should be added", got)
	}
}

// TestSanitize_BlocksJavascriptScheme はjavascript:スキームのリンクが無効化されることを検証する。
func TestSanitize_BlocksJavascriptScheme(t *testing.T) {
	s := NewContentSanitizer()

	got := s.Sanitize(`<a href="javascript:alert(1)">click</a>`)

	if strings.Contains(got, "javascript:") {
		t.Errorf("Sanitize() = %q, javascript: scheme should be removed", got)
	}
}

// TestSanitize_EmptyInput は空文字列入力が空文字列を返すことを検証する。
func TestSanitize_EmptyInput(t *testing.T) {
	s := NewContentSanitizer()

	if got := s.Sanitize(""); got != "" {
		t.Errorf("Sanitize(\"\") = %q, want empty string", got)
	}
}

// TestSanitize_Idempotent は同一入力への再適用が同一出力を返すことを検証する。
func TestSanitize_Idempotent(t *testing.T) {
	s := NewContentSanitizer()

	input := `<p>text <em>emphasis</em></p><script>bad()</script>`
	once := s.Sanitize(input)
	twice := s.Sanitize(once)

	if once != twice {
		t.Errorf("Sanitize is not idempotent: %q -> %q", once, twice)
	}
}
