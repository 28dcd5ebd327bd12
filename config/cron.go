package config

// Schedules of the built-in jobs. A job missing here runs with the schedule it registered.
func CronSchedules() map[string]string {
	return map[string]string{
		"lowstock": GetEnv("LOW_STOCK_SCHEDULE", "@every 1h"),
	}
}
