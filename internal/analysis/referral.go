package analysis

// SummarizeReferral derives the status bucket counts and rates from the
// referral reply. The distribution mapping may be missing or oddly shaped;
// any absent bucket counts as 0 and total is the sum of whatever mapping
// was found, so the summary is always constructible.
func SummarizeReferral(payload map[string]interface{}) *ReferralSummary {
	if payload == nil {
		payload = map[string]interface{}{}
	}

	status := asMap(payload[statusSec])
	dist := asMap(status[statusDist])

	total := 0
	for _, v := range dist {
		if n, ok := v.(float64); ok {
			total += int(n)
		}
	}

	s := &ReferralSummary{
		Total:      total,
		Completed:  int(num(dist, bucketDone)),
		Pending:    int(num(dist, bucketNew)),
		InProgress: int(num(dist, bucketActive)),
		Seen:       int(num(dist, bucketSeen)),
		Accepted:   int(num(dist, bucketAccept)),
		Raw:        payload,
	}

	if total > 0 {
		s.CompletionRate = float64(s.Completed) / float64(total) * 100
		s.PendingRate = float64(s.Pending) / float64(total) * 100
	}

	return s
}
