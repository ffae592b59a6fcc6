package engine

import (
	"sqv/pkg/schema"
)

// BucketReport is one checked amount bucket of a flagged record: the months
// missing an amount plus the full per-month value snapshot for the half
// (kept regardless of missing status, for display and export).
type BucketReport struct {
	Bucket        string                   `json:"bucket"`
	MissingMonths []int                    `json:"missingMonths,omitempty"`
	Values        map[int]schema.CellValue `json:"values"`
}

// CompletenessResult is one record with at least one missing month in some
// checked bucket.
type CompletenessResult struct {
	Record         *schema.QuotaRecord `json:"record"`
	Half           schema.Half         `json:"half"`
	EffectiveStart int                 `json:"effectiveStart"`
	Buckets        []BucketReport      `json:"buckets"`
}

// CheckCompleteness verifies that every checked amount bucket carries a
// value for each month of the fiscal half, from the record's effective
// start month on. The half is selected by the submission period. Records
// whose quota-start date falls after the half's end are excluded entirely.
// A month is missing when its value is absent, a blank or dash placeholder,
// or numeric zero.
func CheckCompleteness(records []*schema.QuotaRecord, period schema.Period) []CompletenessResult {
	half := schema.HalfFor(period)

	var results []CompletenessResult
	for _, rec := range records {
		if rec.QuotaStart != nil && half.StartsAfter(*rec.QuotaStart) {
			continue
		}

		effective := half.EffectiveStartMonth(rec.QuotaStart)
		buckets := checkBuckets(rec, half, effective)

		flagged := false
		for _, b := range buckets {
			if len(b.MissingMonths) > 0 {
				flagged = true
				break
			}
		}
		if flagged {
			results = append(results, CompletenessResult{
				Record:         rec,
				Half:           half,
				EffectiveStart: effective,
				Buckets:        buckets,
			})
		}
	}

	return results
}

// checkBuckets runs the month scan over every applicable bucket: primary/Y1
// always, Y2&Y3 when the schema exposed it, secondary buckets only on
// dual-metric records that carry them.
func checkBuckets(rec *schema.QuotaRecord, half schema.Half, effective int) []BucketReport {
	var reports []BucketReport

	appendBucket := func(bucket *schema.AmountBucket) {
		if bucket != nil {
			reports = append(reports, scanBucket(bucket, half, effective))
		}
	}

	appendBucket(rec.PrimaryY1)
	appendBucket(rec.PrimaryY23)
	if rec.IsDualMetric() {
		appendBucket(rec.SecondaryY1)
		appendBucket(rec.SecondaryY23)
	}

	return reports
}

// scanBucket snapshots every half month and collects the missing ones from
// the effective start month on.
func scanBucket(bucket *schema.AmountBucket, half schema.Half, effective int) BucketReport {
	report := BucketReport{
		Bucket: bucket.Label,
		Values: make(map[int]schema.CellValue, half.EndMonth-half.StartMonth+1),
	}

	for _, month := range half.Months() {
		value := bucket.Months[month]
		report.Values[month] = value
		if month < effective {
			continue
		}
		if value.IsMissing() {
			report.MissingMonths = append(report.MissingMonths, month)
		}
	}

	return report
}
