// Package cli implements the sagemaker-upgrade-v2 command line interface.
//
// The primary invocation rewrites exactly one file per run:
//
//	sagemaker-upgrade-v2 --in-file train.py --out-file train_v2.py
//
// The batch subcommand applies the same single-file semantics to every
// .py and .ipynb file under a directory, one file at a time.
package cli
