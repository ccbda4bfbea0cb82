// Package util holds the shared HTTP plumbing for molscan's outbound
// clients: proxy selection and robots.txt checking.
package util

import (
	"net/http"
	"net/url"
)

// NewProxyFunc builds the Transport.Proxy callback shared by the page
// fetcher and the verification client. Explicit proxy URLs win per scheme;
// with neither configured, the standard proxy environment variables apply.
func NewProxyFunc(httpProxy, httpsProxy, noProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	return func(req *http.Request) (*url.URL, error) {
		switch {
		case req.URL.Scheme == "https" && httpsProxy != "":
			return url.Parse(httpsProxy)
		case httpProxy != "":
			return url.Parse(httpProxy)
		default:
			return http.ProxyFromEnvironment(req)
		}
	}
}
