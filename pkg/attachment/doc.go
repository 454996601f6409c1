// Package attachment loads email attachments from local files and S3.
//
// A [Resolver] picks a [Loader] by the source's URL scheme: plain paths and
// file:// URLs are read from disk, s3://bucket/key from S3-compatible
// storage once an [S3Loader] is registered. [LoadAll] fetches several
// sources concurrently and keeps their order.
//
// contenttype.Detect infers a MIME type from the filename extension,
// falling back to content sniffing and finally application/octet-stream.
package attachment
