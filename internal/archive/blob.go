package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

const (
	devAccount = "devstoreaccount1"
	devKey     = "Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw=="
)

// Blob uploads to an Azure Blob Storage container. Plain http service URLs
// are treated as a local Azurite emulator.
type Blob struct {
	client    *azblob.Client
	container string
}

func NewBlob(ctx context.Context, serviceURL, container string) (*Blob, error) {
	var (
		client *azblob.Client
		err    error
	)

	if strings.HasPrefix(serviceURL, "http://") {
		cred, credErr := azblob.NewSharedKeyCredential(devAccount, devKey)
		if credErr != nil {
			return nil, fmt.Errorf("create shared key credential: %w", credErr)
		}

		client, err = azblob.NewClientWithSharedKeyCredential(serviceURL, cred, nil)
	} else {
		cred, credErr := azidentity.NewDefaultAzureCredential(nil)
		if credErr != nil {
			return nil, fmt.Errorf("create azure credential: %w", credErr)
		}

		client, err = azblob.NewClient(serviceURL, cred, nil)
	}

	if err != nil {
		return nil, fmt.Errorf("create blob client: %w", err)
	}

	if _, err := client.CreateContainer(ctx, container, nil); err != nil {
		var azErr *azcore.ResponseError
		if !errors.As(err, &azErr) || azErr.ErrorCode != "ContainerAlreadyExists" {
			return nil, fmt.Errorf("create container %s: %w", container, err)
		}
	}

	return &Blob{client: client, container: container}, nil
}

func (b *Blob) Upload(ctx context.Context, name string, r io.Reader) error {
	if _, err := b.client.UploadStream(ctx, b.container, name, r, nil); err != nil {
		return fmt.Errorf("upload blob %s: %w", name, err)
	}

	return nil
}
