// Package storage uploads generated documents to object storage.
//
// Backends register themselves with RegisterFactory from an init function;
// import the ones you need for side effects:
//
//	import (
//	    _ "github.com/kbukum/visitnote/storage/gcs"
//	    _ "github.com/kbukum/visitnote/storage/local"
//	)
//
// Supported providers: gcs (Firebase Storage buckets), s3 (and
// S3-compatible services), local filesystem, memory.
package storage
