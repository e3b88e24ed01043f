package parsing

import "time"

const sampleResume = `Jane Doe
jane.doe@example.com | +1 555-123-4567
San Francisco, CA

Summary
Backend engineer focused on distributed systems.

Experience
Senior Backend Engineer, Acme Corp
2019 - present
Built Node.js services backed by PostgreSQL.
Software Engineer, Beta Inc
2015 - 2019

Education
B.S. in Computer Science, State University

Skills
Languages: Go, Python, TypeScript
• Docker | Kubernetes
Redis; 2020
`

func fixedClock(year int) func() time.Time {
	return func() time.Time {
		return time.Date(year, time.June, 1, 0, 0, 0, 0, time.UTC)
	}
}
