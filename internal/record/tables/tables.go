// Package tables keeps the ledger in an Azure Storage table. Each data row is
// one entity holding the row as a JSON document, keyed by its zero-padded
// position so the service returns rows in insertion order.
package tables

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"

	"github.com/MrJamesThe3rd/duo/internal/ledger"
)

const (
	rowsPartition = "ROWS"
	metaPartition = "META"
	headersKey    = "HEADERS"

	// Azurite's well-known development account.
	devAccount = "devstoreaccount1"
	devKey     = "Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw=="
)

type entity struct {
	PartitionKey string `json:"PartitionKey"`
	RowKey       string `json:"RowKey"`
	Data         string `json:"Data"`
}

type Store struct {
	client *aztables.Client
}

// New connects to the table, creating it when missing. Plain http service
// URLs are treated as a local Azurite emulator.
func New(ctx context.Context, serviceURL, table string) (*Store, error) {
	var (
		svc *aztables.ServiceClient
		err error
	)

	if strings.HasPrefix(serviceURL, "http://") {
		cred, credErr := aztables.NewSharedKeyCredential(devAccount, devKey)
		if credErr != nil {
			return nil, fmt.Errorf("creating shared key credential: %w", credErr)
		}

		svc, err = aztables.NewServiceClientWithSharedKey(serviceURL, cred, nil)
	} else {
		cred, credErr := azidentity.NewDefaultAzureCredential(nil)
		if credErr != nil {
			return nil, fmt.Errorf("creating azure credential: %w", credErr)
		}

		svc, err = aztables.NewServiceClient(serviceURL, cred, nil)
	}

	if err != nil {
		return nil, fmt.Errorf("creating table service client: %w", err)
	}

	if _, err := svc.CreateTable(ctx, table, nil); err != nil {
		var azErr *azcore.ResponseError
		if !errors.As(err, &azErr) || azErr.ErrorCode != "TableAlreadyExists" {
			return nil, fmt.Errorf("creating table %s: %w", table, err)
		}
	}

	return &Store{client: svc.NewClient(table)}, nil
}

func (s *Store) Headers(ctx context.Context) ([]string, error) {
	resp, err := s.client.GetEntity(ctx, metaPartition, headersKey, nil)
	if err != nil {
		var azErr *azcore.ResponseError
		if errors.As(err, &azErr) && azErr.StatusCode == http.StatusNotFound {
			return nil, nil
		}

		return nil, fmt.Errorf("reading headers: %w", err)
	}

	var e entity
	if err := json.Unmarshal(resp.Value, &e); err != nil {
		return nil, fmt.Errorf("decoding headers entity: %w", err)
	}

	var headers []string
	if err := json.Unmarshal([]byte(e.Data), &headers); err != nil {
		return nil, fmt.Errorf("decoding headers: %w", err)
	}

	return headers, nil
}

func (s *Store) SetHeaders(ctx context.Context, headers []string) error {
	data, err := json.Marshal(headers)
	if err != nil {
		return fmt.Errorf("encoding headers: %w", err)
	}

	return s.upsert(ctx, entity{PartitionKey: metaPartition, RowKey: headersKey, Data: string(data)})
}

func (s *Store) ReadAll(ctx context.Context) ([]ledger.Row, error) {
	filter := fmt.Sprintf("PartitionKey eq '%s'", rowsPartition)
	pager := s.client.NewListEntitiesPager(&aztables.ListEntitiesOptions{Filter: &filter})

	var rows []ledger.Row

	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing rows: %w", err)
		}

		for _, raw := range resp.Entities {
			var e entity
			if err := json.Unmarshal(raw, &e); err != nil {
				return nil, fmt.Errorf("decoding entity: %w", err)
			}

			row := ledger.Row{}
			if err := json.Unmarshal([]byte(e.Data), &row); err != nil {
				return nil, fmt.Errorf("decoding row %s: %w", e.RowKey, err)
			}

			rows = append(rows, row)
		}
	}

	return rows, nil
}

func (s *Store) Append(ctx context.Context, row ledger.Row) error {
	rows, err := s.ReadAll(ctx)
	if err != nil {
		return err
	}

	e, err := newEntity(len(rows), row)
	if err != nil {
		return err
	}

	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encoding entity: %w", err)
	}

	if _, err := s.client.AddEntity(ctx, body, nil); err != nil {
		return fmt.Errorf("adding row %s: %w", e.RowKey, err)
	}

	return nil
}

func (s *Store) Update(ctx context.Context, rowIndex int, row ledger.Row) error {
	e, err := newEntity(rowIndex, row)
	if err != nil {
		return err
	}

	return s.upsert(ctx, e)
}

func (s *Store) upsert(ctx context.Context, e entity) error {
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encoding entity: %w", err)
	}

	_, err = s.client.UpsertEntity(ctx, body, &aztables.UpsertEntityOptions{UpdateMode: aztables.UpdateModeReplace})
	if err != nil {
		return fmt.Errorf("upserting %s/%s: %w", e.PartitionKey, e.RowKey, err)
	}

	return nil
}

func newEntity(index int, row ledger.Row) (entity, error) {
	data, err := json.Marshal(row)
	if err != nil {
		return entity{}, fmt.Errorf("encoding row: %w", err)
	}

	return entity{PartitionKey: rowsPartition, RowKey: RowKey(index), Data: string(data)}, nil
}

// RowKey pads the position so lexical and numeric order agree.
func RowKey(index int) string {
	return fmt.Sprintf("%010d", index)
}
