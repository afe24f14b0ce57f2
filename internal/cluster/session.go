// Package cluster retrieves namespaces and secrets from a Kubernetes API
// server for a single CLI invocation.
package cluster

import (
	"context"
	"fmt"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
)

// ConnectOptions selects the kubeconfig, context and per-request timeout.
type ConnectOptions struct {
	// Kubeconfig is an explicit kubeconfig path. Empty uses the client-go
	// default chain ($KUBECONFIG, ~/.kube/config, in-cluster).
	Kubeconfig string

	// Context overrides the kubeconfig's current context.
	Context string

	// Timeout bounds every API call. Zero means no timeout.
	Timeout time.Duration
}

// Session holds the API client for one invocation. It is not shared across
// invocations and performs no caching.
type Session struct {
	client  kubernetes.Interface
	timeout time.Duration
	host    string
}

// NewSession wraps an existing client, typically a fake clientset in tests.
func NewSession(client kubernetes.Interface, timeout time.Duration) *Session {
	return &Session{client: client, timeout: timeout}
}

// Connect builds a Session from kubeconfig loading rules.
func Connect(opts ConnectOptions) (*Session, error) {
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	if opts.Kubeconfig != "" {
		path, err := homedir.Expand(opts.Kubeconfig)
		if err != nil {
			return nil, fmt.Errorf("expanding kubeconfig path: %w", err)
		}
		rules.ExplicitPath = path
	}

	overrides := &clientcmd.ConfigOverrides{CurrentContext: opts.Context}
	restConfig, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, overrides).ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("loading kubeconfig: %w", err)
	}
	restConfig.UserAgent = "ksecret"

	client, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("creating kubernetes client: %w", err)
	}

	s := NewSession(client, opts.Timeout)
	s.host = restConfig.Host
	return s, nil
}

// Host returns the API server address, empty for injected clients.
func (s *Session) Host() string { return s.host }

func (s *Session) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}
