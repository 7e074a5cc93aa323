// Package dataprep builds model features for monthly shop × item sales.
//
// What:
//
//   - BuildGrid turns sparse transactions into a dense shop × item × month
//     grid with a summed "target" column, zero-filled.
//   - MeanEncoder encodes categorical groups by their target mean, using a
//     leave-current-row-out running mean on training rows.
//   - LagFeatureBuilder / AddLagFeatures attach "value k months ago" columns.
//   - GroupAggregator attaches group aggregates of month m to month m+k.
//   - Cleaning and imputation helpers for the NaN values left by joins.
//
// Fit state:
//
// The stateful builders are either unfit or fit with a lookup table. Calling
// Transform on an unfit builder returns ErrNotFitted. Fitting again replaces
// the previous table.
//
// Missing values:
//
// Unmatched joins yield NaN. Imputation is left to the caller (see FillNaN,
// FillNaNWithMean, FillNaNWithGroupMean).
package dataprep
