package usecase

import "time"

// SetNowForTest overrides the service clock for tests in external packages.
func SetNowForTest(s *BestPropsService, now func() time.Time) {
	s.now = now
}
