package security

import (
	"testing"
	"time"
)

// TestValidateURL_AllowsEmptyURL は空URL（カバー画像なし）が許可されることを検証する。
func TestValidateURL_AllowsEmptyURL(t *testing.T) {
	g := NewCoverGuard(time.Second)

	if err := g.ValidateURL(""); err != nil {
		t.Errorf("ValidateURL(\"\") = %v, want nil", err)
	}
}

// TestValidateURL_AllowsPublicHTTPS は公開ホストへのhttps URLが許可されることを検証する。
func TestValidateURL_AllowsPublicHTTPS(t *testing.T) {
	g := NewCoverGuard(time.Second)

	urls := []string{
		"https://images.example.com/cover.png",
		"http://cdn.example.org/photo.jpg",
		"https://93.184.216.34/cover.png",
	}
	for _, u := range urls {
		if err := g.ValidateURL(u); err != nil {
			t.Errorf("ValidateURL(%q) = %v, want nil", u, err)
		}
	}
}

// TestValidateURL_RejectsDisallowedSchemes はhttp/https以外のスキームが拒否されることを検証する。
func TestValidateURL_RejectsDisallowedSchemes(t *testing.T) {
	g := NewCoverGuard(time.Second)

	urls := []string{
		"file:///etc/passwd",
		"ftp://example.com/cover.png",
		"javascript:alert(1)",
		"gopher://example.com/",
	}
	for _, u := range urls {
		if err := g.ValidateURL(u); err == nil {
			t.Errorf("ValidateURL(%q) = nil, want error", u)
		}
	}
}

// TestValidateURL_RejectsBlockedIPLiterals はブロック範囲のIPリテラルが拒否されることを検証する。
func TestValidateURL_RejectsBlockedIPLiterals(t *testing.T) {
	g := NewCoverGuard(time.Second)

	urls := []string{
		"http://127.0.0.1/cover.png",
		"http://10.0.0.5/cover.png",
		"http://172.16.1.1/cover.png",
		"http://192.168.1.10/cover.png",
		"http://169.254.169.254/latest/meta-data/",
		"http://0.0.0.0/cover.png",
		"http://[::1]/cover.png",
		"http://[fe80::1]/cover.png",
		"http://[fd00::1]/cover.png",
	}
	for _, u := range urls {
		if err := g.ValidateURL(u); err == nil {
			t.Errorf("ValidateURL(%q) = nil, want error", u)
		}
	}
}

// TestValidateURL_RejectsEmptyHost はホストのないURLが拒否されることを検証する。
func TestValidateURL_RejectsEmptyHost(t *testing.T) {
	g := NewCoverGuard(time.Second)

	if err := g.ValidateURL("https:///cover.png"); err == nil {
		t.Error("ValidateURL with empty host = nil, want error")
	}
}

// TestProbe_EmptyURLSkipsRequest は空URLでProbeがリクエストなしに成功することを検証する。
func TestProbe_EmptyURLSkipsRequest(t *testing.T) {
	g := NewCoverGuard(time.Second)

	if err := g.Probe(""); err != nil {
		t.Errorf("Probe(\"\") = %v, want nil", err)
	}
}

// TestProbe_RejectsBlockedURLBeforeRequest は静的検証で弾かれるURLが
// ネットワークアクセスなしに拒否されることを検証する。
func TestProbe_RejectsBlockedURLBeforeRequest(t *testing.T) {
	g := NewCoverGuard(time.Second)

	if err := g.Probe("http://169.254.169.254/latest/meta-data/"); err == nil {
		t.Error("Probe to metadata IP = nil, want error")
	}
}

// TestNewCoverGuard_DefaultsTimeout は非正のタイムアウトがデフォルト値に補正されることを検証する。
func TestNewCoverGuard_DefaultsTimeout(t *testing.T) {
	g := NewCoverGuard(0)

	if g.timeout != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", g.timeout)
	}
}
