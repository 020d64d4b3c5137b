// Package timezone pins every wall clock reading to APP_TIMEZONE.
//
// Event dates and clock times arrive without a zone and are stored in
// TIMESTAMP columns, so bookings only compare correctly when both sides are
// placed in the same location. Use Now instead of time.Now, Parse for
// incoming dates and Wall for values read back from Postgres.
package timezone
