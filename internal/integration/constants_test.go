package integration_test

import "time"

const (
	TestHoldWindow      = 2 * time.Minute
	TestMaxSeatsPerHold = 4

	// seeded schedules
	TestScheduleId         = 1
	TestOtherScheduleId    = 3
	TestDepartedScheduleId = 4
	TestUnknownScheduleId  = 999

	TestUserFirstName = "John"
	TestUserLastName  = "Doe"
	TestUserEmail     = "test@example.com"
	TestUserPhone     = "+905551112233"
	TestUserPassword  = "Test123!@#"

	TestContactEmail = "passenger@example.com"
)

const (
	eventuallyTimeout = 5 * time.Second
	eventuallyTick    = 50 * time.Millisecond
)
