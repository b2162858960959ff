package probe

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"net"
	"net/http"
	"syscall"

	"github.com/hamed0406/urlpinger/internal/domain"
)

// Classify maps a failed request to a Cause. req may be nil.
func Classify(req *http.Request, err error) domain.Cause {
	if req != nil && !dialable(req) {
		return domain.CauseInvalidURL
	}
	if errors.Is(err, context.Canceled) {
		return domain.CauseCanceled
	}

	var (
		netErr    net.Error
		dnsErr    *net.DNSError
		verifyErr *tls.CertificateVerificationError
		recordErr tls.RecordHeaderError
		unknownCA x509.UnknownAuthorityError
		hostErr   x509.HostnameError
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return domain.CauseTimeout
	case errors.As(err, &dnsErr):
		return domain.CauseDNS
	case errors.Is(err, syscall.ECONNREFUSED):
		return domain.CauseRefused
	case errors.As(err, &verifyErr), errors.As(err, &recordErr),
		errors.As(err, &unknownCA), errors.As(err, &hostErr):
		return domain.CauseTLS
	default:
		return domain.CauseProtocol
	}
}

func dialable(req *http.Request) bool {
	if req.URL == nil || req.URL.Host == "" {
		return false
	}
	return req.URL.Scheme == "http" || req.URL.Scheme == "https"
}
