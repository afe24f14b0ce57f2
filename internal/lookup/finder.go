// Package lookup wires namespace and secret resolution to the cluster
// inventory and renders the chosen key.
package lookup

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/szaher/ksecret/internal/cluster"
	"github.com/szaher/ksecret/internal/render"
	"github.com/szaher/ksecret/internal/resolve"
)

// DefaultNamespace is used when only a secret hint is given.
const DefaultNamespace = "default"

var (
	namespaceTitles = resolve.Titles{
		Browse:  "Select a namespace",
		Suggest: "Do you mean one of these namespaces?",
	}
	secretTitles = resolve.Titles{
		Browse:  "Do you mean one of these secrets",
		Suggest: "Do you mean one of these secrets",
	}
)

// Inventory lists and fetches cluster objects.
type Inventory interface {
	ListNamespaces(ctx context.Context) ([]string, error)
	ListSecretNames(ctx context.Context, namespace string) ([]string, error)
	GetSecret(ctx context.Context, namespace, name string) (*cluster.Secret, error)
}

// Request carries the user's hints. Either may be empty.
type Request struct {
	Namespace string
	Name      string
}

// Finder resolves a Request to one rendered secret entry.
type Finder struct {
	inventory Inventory
	resolver  *resolve.Resolver
	renderer  *render.Renderer
	logger    *slog.Logger
}

// NewFinder creates a Finder. A nil logger discards log output.
func NewFinder(inv Inventory, resolver *resolve.Resolver, renderer *render.Renderer, logger *slog.Logger) *Finder {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Finder{
		inventory: inv,
		resolver:  resolver,
		renderer:  renderer,
		logger:    logger,
	}
}

// Find resolves the namespace and secret for req, then asks for a key and
// returns its decoded value.
func (f *Finder) Find(ctx context.Context, req Request) (render.Entry, error) {
	namespace, err := f.namespace(ctx, req)
	if err != nil {
		return render.Entry{}, err
	}

	names, err := f.inventory.ListSecretNames(ctx, namespace)
	if err != nil {
		return render.Entry{}, err
	}
	name, err := f.resolver.Resolve(ctx, secretTitles, req.Name, names)
	if err != nil {
		return render.Entry{}, fmt.Errorf("resolving secret in namespace %s: %w", namespace, err)
	}
	f.logger.Debug("resolved secret", "namespace", namespace, "secret", name)

	secret, err := f.inventory.GetSecret(ctx, namespace, name)
	if err != nil {
		return render.Entry{}, err
	}

	entry, err := f.renderer.Render(ctx, secret)
	if err != nil {
		return render.Entry{}, fmt.Errorf("rendering %s/%s: %w", namespace, name, err)
	}
	f.logger.Debug("rendered secret key", "namespace", namespace, "secret", name, "key", entry.Key)
	return entry, nil
}

func (f *Finder) namespace(ctx context.Context, req Request) (string, error) {
	if req.Name != "" && req.Namespace == "" {
		f.logger.Debug("secret hint without namespace, using default namespace", "namespace", DefaultNamespace)
		return DefaultNamespace, nil
	}

	namespaces, err := f.inventory.ListNamespaces(ctx)
	if err != nil {
		return "", err
	}
	ns, err := f.resolver.Resolve(ctx, namespaceTitles, req.Namespace, namespaces)
	if err != nil {
		return "", fmt.Errorf("resolving namespace: %w", err)
	}
	f.logger.Debug("resolved namespace", "namespace", ns)
	return ns, nil
}
