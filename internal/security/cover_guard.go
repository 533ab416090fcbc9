// Package security はアプリケーションのセキュリティ機能を提供する。
package security

import (
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/doyensec/safeurl"
)

// CoverGuardService はカバー画像URL検証機能のインターフェースを定義する。
// クライアントが指定するpostCoverはサーバーが引き回す唯一の外部URLであり、
// プライベートネットワークを指すURLを保存させない。
type CoverGuardService interface {
	// ValidateURL はカバー画像URLの安全性を静的に検証する。
	// スキーム、ホスト、IPアドレスの検証を行い、危険なURLの場合はエラーを返す。
	// 空文字列（カバー画像なし）は許可される。
	ValidateURL(rawURL string) error

	// Probe はURLへHEADリクエストを送り、到達可能かを確認する。
	// safeurlのクライアントを使用するため、DNS解決後のIPアドレスも検証され、
	// DNS再バインディング攻撃にも対応する。
	Probe(rawURL string) error
}

// allowedSchemes はカバー画像URLで許可されるスキーム。
var allowedSchemes = []string{"http", "https"}

// blockedNetworks はブロックされるネットワーク範囲。
// パッケージ初期化時に1回だけパースし、ValidateURLでの検証に使用する。
var blockedNetworks []net.IPNet

func init() {
	cidrs := []string{
		// プライベートIPアドレス (RFC 1918)
		"10.0.0.0/8",
		"172.16.0.0/12",
		"192.168.0.0/16",
		// ループバック (RFC 1122)
		"127.0.0.0/8",
		// リンクローカル (RFC 3927) - クラウドメタデータIP (169.254.169.254) を含む
		"169.254.0.0/16",
		// カレントネットワーク
		"0.0.0.0/8",
		// IPv6ループバック
		"::1/128",
		// IPv6リンクローカル
		"fe80::/10",
		// IPv6ユニークローカル
		"fc00::/7",
	}
	for _, cidr := range cidrs {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			panic(fmt.Sprintf("invalid CIDR in blockedNetworks: %s: %v", cidr, err))
		}
		blockedNetworks = append(blockedNetworks, *network)
	}
}

// coverGuard はCoverGuardServiceの実装。
type coverGuard struct {
	timeout time.Duration
}

// NewCoverGuard はCoverGuardServiceの新しいインスタンスを生成する。
func NewCoverGuard(timeout time.Duration) *coverGuard {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &coverGuard{timeout: timeout}
}

// ValidateURL はカバー画像URLの安全性を静的に検証する。
// DNS解決を伴わない事前チェックであり、DNS再バインディング攻撃は
// Probeが使用するsafeurlクライアント側のDialer検証で防止される。
func (g *coverGuard) ValidateURL(rawURL string) error {
	if rawURL == "" {
		return nil
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	scheme := strings.ToLower(parsed.Scheme)
	if !isAllowedScheme(scheme) {
		return fmt.Errorf("disallowed scheme: %s (allowed: %v)", scheme, allowedSchemes)
	}

	host := parsed.Hostname()
	if host == "" {
		return fmt.Errorf("empty host in URL: %s", rawURL)
	}

	// ホストがIPアドレスリテラルの場合はブロック範囲を検査する
	if ip := net.ParseIP(host); ip != nil {
		for _, network := range blockedNetworks {
			if network.Contains(ip) {
				return fmt.Errorf("URL resolves to a blocked network: %s", host)
			}
		}
	}

	return nil
}

// Probe はsafeurlクライアントでHEADリクエストを送り、到達可能かを確認する。
// safeurlはnet.DialerのControlフックでDNS解決後のIPアドレスを検証するため、
// プライベートIP、ループバック、リンクローカル、メタデータIPへの
// リクエストが自動的にブロックされる。
func (g *coverGuard) Probe(rawURL string) error {
	if rawURL == "" {
		return nil
	}
	if err := g.ValidateURL(rawURL); err != nil {
		return err
	}

	config := safeurl.GetConfigBuilder().
		SetTimeout(g.timeout).
		SetAllowedSchemes(allowedSchemes...).
		SetAllowedPorts(80, 443).
		Build()

	// safeurlのラップ対象である*http.Clientを直接使う。
	// DialerのControlフックはTransportに組み込まれているため保護は維持される。
	httpClient := safeurl.Client(config).Client

	req, err := http.NewRequest(http.MethodHead, rawURL, nil)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("cover URL is not reachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("cover URL returned status %d", resp.StatusCode)
	}
	return nil
}

// isAllowedScheme は許可されたスキームかを判定する。
func isAllowedScheme(scheme string) bool {
	for _, s := range allowedSchemes {
		if scheme == s {
			return true
		}
	}
	return false
}
