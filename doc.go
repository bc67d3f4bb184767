// Package tfrec packs drug-response samples into TFRecord files of
// tf.train.Example messages.
//
// Every record holds one sample with three features:
//
//	ic50                float_list, 1 value
//	selected_genes_20   float_list, D1 values (gene expression)
//	smiles_atom_tokens  int64_list, D2 values (tokenized SMILES)
//
// # Quick Start
//
//	ds, err := tfrec.NewDataset(ic50, genes, tokens) // [N], [N][D1], [N][D2]
//	if err != nil {
//	    return err
//	}
//	store := blobstore.NewLocalStore(".")
//	m, err := tfrec.WriteDataset(ctx, store, "TEST.tfrecords", ds,
//	    tfrec.WithLogger(tfrec.NewTextLogger(slog.LevelInfo)),
//	    tfrec.WithManifest(),
//	)
//
// # Single Rows
//
// EncodeRow turns one sample into the serialized Example bytes; DecodeRow
// reverses it. FloatField and Int64Field flatten any array-like (scalars,
// nested slices and arrays, tensors) row-major into a feature.
//
// # Streaming
//
// Writer exposes the driver loop for callers that produce rows one at a
// time:
//
//	w := tfrec.NewWriter(store, "TEST.tfrecords")
//	if err := w.Open(ctx); err != nil {
//	    return err
//	}
//	defer w.Close()
//	for _, r := range rows {
//	    if err := w.WriteRow(ctx, r); err != nil {
//	        return err // *RowError; earlier rows are kept
//	    }
//	}
//
// # Error Handling
//
// Per-row failures are *RowError values wrapping the cause. Shape problems
// are *ShapeError and are detected before anything is written. Decoding a
// record without the expected features yields *FieldError.
//
// # Observability
//
// Logging goes through *Logger (log/slog) and is disabled by default.
// MetricsCollector receives per-row and per-run measurements; see the
// prommetrics package for a Prometheus collector.
package tfrec
