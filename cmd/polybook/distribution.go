package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/discochess/polybook/internal/bookstore"
	"github.com/discochess/polybook/internal/codec"
	"github.com/discochess/polybook/internal/codec/gzipcodec"
	"github.com/discochess/polybook/internal/codec/zstdcodec"
)

// resolveCodec maps a --compress flag value to a codec.Codec. An empty or
// "none" value disables compression.
func resolveCodec(name string) (codec.Codec, error) {
	switch name {
	case "", "none":
		return nil, nil
	case "gzip":
		return gzipcodec.New(), nil
	case "zstd":
		return zstdcodec.New(), nil
	default:
		return nil, fmt.Errorf("unknown --compress value %q (want gzip, zstd, or none)", name)
	}
}

// resolveDistribution parses --output-gcs/--output-s3 (at most one may be
// set) into a bookstore.Store the builder pushes the finished book to
// after writing it locally. A nil store means no distribution.
func resolveDistribution(ctx context.Context) (bookstore.Store, string, error) {
	switch {
	case bookOutputGCS != "" && bookOutputS3 != "":
		return nil, "", fmt.Errorf("only one of --output-gcs or --output-s3 may be set")
	case bookOutputGCS != "":
		bucket, prefix, err := splitBucketURL(bookOutputGCS, "gs://")
		if err != nil {
			return nil, "", err
		}
		var opts []bookstore.GCSOption
		if prefix != "" {
			opts = append(opts, bookstore.WithGCSPrefix(prefix))
		}
		st, err := bookstore.NewGCSStore(ctx, bucket, opts...)
		if err != nil {
			return nil, "", fmt.Errorf("creating GCS store: %w", err)
		}
		return st, bookOutputGCS, nil
	case bookOutputS3 != "":
		bucket, prefix, err := splitBucketURL(bookOutputS3, "s3://")
		if err != nil {
			return nil, "", err
		}
		var opts []bookstore.S3Option
		if prefix != "" {
			opts = append(opts, bookstore.WithS3Prefix(prefix))
		}
		st, err := bookstore.NewS3Store(ctx, bucket, opts...)
		if err != nil {
			return nil, "", fmt.Errorf("creating S3 store: %w", err)
		}
		return st, bookOutputS3, nil
	default:
		return nil, "", nil
	}
}

func splitBucketURL(url, scheme string) (bucket, prefix string, err error) {
	rest := strings.TrimPrefix(url, scheme)
	if rest == url {
		return "", "", fmt.Errorf("expected %s prefix in %q", scheme, url)
	}
	parts := strings.SplitN(rest, "/", 2)
	bucket = parts[0]
	if bucket == "" {
		return "", "", fmt.Errorf("missing bucket name in %q", url)
	}
	if len(parts) == 2 {
		prefix = parts[1]
	}
	return bucket, prefix, nil
}
