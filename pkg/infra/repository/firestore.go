// Package repository implements persistence for workflow run records.
package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/tailor/pkg/domain/model"
	"github.com/m-mizutani/tailor/pkg/domain/types"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Firestore persists workflow runs as documents keyed by run ID.
type Firestore struct {
	client     *firestore.Client
	collection string
}

// NewFirestore creates a Firestore-backed run repository using application
// default credentials. Extra client options are passed through, which lets
// tests point at an emulator.
func NewFirestore(ctx context.Context, projectID, collection string, opts ...option.ClientOption) (*Firestore, error) {
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	return &Firestore{client: client, collection: collection}, nil
}

// Put creates or replaces the record of a run
func (x *Firestore) Put(ctx context.Context, run *model.WorkflowRun) error {
	if _, err := x.client.Collection(x.collection).Doc(run.ID.String()).Set(ctx, run); err != nil {
		return fmt.Errorf("failed to store run %s: %w", run.ID, err)
	}
	return nil
}

// Get returns the record of a run
func (x *Firestore) Get(ctx context.Context, id types.RunID) (*model.WorkflowRun, error) {
	snap, err := x.client.Collection(x.collection).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("run %s: %w", id, types.ErrRunNotFound)
		}
		return nil, fmt.Errorf("failed to get run %s: %w", id, err)
	}

	var run model.WorkflowRun
	if err := snap.DataTo(&run); err != nil {
		return nil, fmt.Errorf("failed to decode run %s: %w", id, err)
	}
	return &run, nil
}

// Close releases the underlying client
func (x *Firestore) Close() error {
	return x.client.Close()
}
