// Package security はニュースフィード取り込み時の外部入力に対する防御機能を提供する。
package security

import (
	"fmt"
	"net"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/doyensec/safeurl"
)

// URLGuard は外部URLへのアクセス可否を判定し、安全なHTTPクライアントを生成する。
type URLGuard interface {
	// NewSafeClient はSSRF防止機能付きのHTTPクライアントを生成する。
	NewSafeClient(timeout time.Duration) *http.Client

	// ValidateURL はDNS解決を伴わない静的な検証を行う。
	ValidateURL(rawURL string) error
}

var allowedSchemes = []string{"http", "https"}

var defaultAllowedPorts = []int{80, 443}

// blockedNetworks はDNS解決前の静的検証で拒否するネットワーク範囲。
// 解決後のIPアドレスはsafeurlがDialerのControlフックで検証する。
var blockedNetworks = mustParseCIDRs(
	"10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16", // RFC 1918
	"100.64.0.0/10",  // CGNAT
	"127.0.0.0/8",    // ループバック
	"169.254.0.0/16", // リンクローカル、メタデータIPを含む
	"0.0.0.0/8",
	"::1/128", "::/128", "fe80::/10", "fc00::/7",
)

var blockedHostnames = []string{"localhost", "metadata.google.internal"}

func mustParseCIDRs(cidrs ...string) []*net.IPNet {
	networks := make([]*net.IPNet, 0, len(cidrs))
	for _, cidr := range cidrs {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			panic(fmt.Sprintf("invalid CIDR in blockedNetworks: %s: %v", cidr, err))
		}
		networks = append(networks, network)
	}
	return networks
}

// SSRFGuard はURLGuardの実装。
type SSRFGuard struct {
	ports []int
}

// Option はSSRFGuardの設定を変更する。
type Option func(*SSRFGuard)

// WithAllowedPorts は接続を許可するポートを置き換える。
func WithAllowedPorts(ports ...int) Option {
	return func(g *SSRFGuard) {
		g.ports = append([]int(nil), ports...)
	}
}

// NewSSRFGuard はSSRFGuardを生成する。既定の許可ポートは80と443。
func NewSSRFGuard(opts ...Option) *SSRFGuard {
	g := &SSRFGuard{ports: defaultAllowedPorts}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NewSafeClient はプライベートIP、ループバック、リンクローカル、メタデータIPへの
// 接続をDialerレベルで拒否するHTTPクライアントを返す。
func (g *SSRFGuard) NewSafeClient(timeout time.Duration) *http.Client {
	config := safeurl.GetConfigBuilder().
		SetTimeout(timeout).
		SetAllowedSchemes(allowedSchemes...).
		SetAllowedPorts(g.ports...).
		Build()

	return safeurl.Client(config).Client
}

// ValidateURL はスキーム、ホスト、ポート、IPアドレスを検証する。
func (g *SSRFGuard) ValidateURL(rawURL string) error {
	if rawURL == "" {
		return fmt.Errorf("empty URL")
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	scheme := strings.ToLower(parsed.Scheme)
	if !slices.Contains(allowedSchemes, scheme) {
		return fmt.Errorf("disallowed scheme: %q (allowed: %v)", scheme, allowedSchemes)
	}

	host := parsed.Hostname()
	if host == "" {
		return fmt.Errorf("empty host in URL: %s", rawURL)
	}

	port, err := effectivePort(parsed)
	if err != nil {
		return err
	}
	if !slices.Contains(g.ports, port) {
		return fmt.Errorf("disallowed port: %d (allowed: %v)", port, g.ports)
	}

	if ip := net.ParseIP(host); ip != nil {
		if isBlockedIP(ip) {
			return fmt.Errorf("blocked IP address: %s", ip)
		}
		return nil
	}

	if slices.Contains(blockedHostnames, strings.ToLower(strings.TrimSuffix(host, "."))) {
		return fmt.Errorf("blocked host: %s", host)
	}

	return nil
}

func effectivePort(u *url.URL) (int, error) {
	if p := u.Port(); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, fmt.Errorf("invalid port: %q", p)
		}
		return n, nil
	}
	if strings.EqualFold(u.Scheme, "https") {
		return 443, nil
	}
	return 80, nil
}

func isBlockedIP(ip net.IP) bool {
	for _, network := range blockedNetworks {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}
