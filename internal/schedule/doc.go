// Package schedule rebuilds the execution order of a test campaign from its
// occurs-before pairs and estimates the campaign duration.
//
// The order is a singly linked chain: every test case names at most one
// successor, exactly one case (the head) has no predecessor and exactly one
// case (the end) has no successor. Inputs that break this shape are reported
// as *domain.MalformedScheduleError instead of yielding a partial order.
package schedule
