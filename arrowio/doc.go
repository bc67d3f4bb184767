// Package arrowio converts between tfrec datasets and Apache Arrow.
//
// A dataset maps to a record batch with three columns:
//
//	ic50                float32
//	selected_genes_20   fixed_size_list<float32>[D1]
//	smiles_atom_tokens  fixed_size_list<int64>[D2]
//
// WriteIPC and ReadIPC move datasets through Arrow IPC streams, which is
// how the tfrec command line tool exchanges input data. On read a float64
// ic50 column is narrowed to float32; nulls are rejected.
package arrowio
