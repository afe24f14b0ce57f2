package cluster

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Secret is the part of a Kubernetes Secret the CLI works with.
type Secret struct {
	Namespace string
	Name      string
	Type      string

	// Data maps payload keys to their decoded bytes. It is nil when the
	// secret carries no payload at all.
	Data map[string][]byte
}

// FetchError reports a failed inventory call. It unwraps to the API error,
// so apierrors.IsNotFound and friends keep working.
type FetchError struct {
	Op        string
	Namespace string
	Name      string
	Err       error
}

func (e *FetchError) Error() string {
	switch {
	case e.Name != "":
		return fmt.Sprintf("%s %s/%s: %v", e.Op, e.Namespace, e.Name, e.Err)
	case e.Namespace != "":
		return fmt.Sprintf("%s in namespace %s: %v", e.Op, e.Namespace, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
}

func (e *FetchError) Unwrap() error { return e.Err }

// ListNamespaces returns every namespace name in API order.
func (s *Session) ListNamespaces(ctx context.Context) ([]string, error) {
	ctx, cancel := s.callContext(ctx)
	defer cancel()

	list, err := s.client.CoreV1().Namespaces().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, &FetchError{Op: "list namespaces", Err: err}
	}

	names := make([]string, 0, len(list.Items))
	for _, ns := range list.Items {
		names = append(names, ns.Name)
	}
	return names, nil
}

// ListSecrets returns every secret record in namespace.
func (s *Session) ListSecrets(ctx context.Context, namespace string) ([]Secret, error) {
	ctx, cancel := s.callContext(ctx)
	defer cancel()

	list, err := s.client.CoreV1().Secrets(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, &FetchError{Op: "list secrets", Namespace: namespace, Err: err}
	}

	secrets := make([]Secret, 0, len(list.Items))
	for i := range list.Items {
		secrets = append(secrets, fromAPI(&list.Items[i]))
	}
	return secrets, nil
}

// ListSecretNames returns the names of every secret in namespace.
func (s *Session) ListSecretNames(ctx context.Context, namespace string) ([]string, error) {
	secrets, err := s.ListSecrets(ctx, namespace)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(secrets))
	for _, sec := range secrets {
		names = append(names, sec.Name)
	}
	return names, nil
}

// GetSecret fetches one secret by exact name.
func (s *Session) GetSecret(ctx context.Context, namespace, name string) (*Secret, error) {
	ctx, cancel := s.callContext(ctx)
	defer cancel()

	obj, err := s.client.CoreV1().Secrets(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return nil, &FetchError{Op: "get secret", Namespace: namespace, Name: name, Err: err}
	}

	sec := fromAPI(obj)
	return &sec, nil
}

func fromAPI(obj *corev1.Secret) Secret {
	return Secret{
		Namespace: obj.Namespace,
		Name:      obj.Name,
		Type:      string(obj.Type),
		Data:      obj.Data,
	}
}
