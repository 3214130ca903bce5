// Package authz centralizes the role/ownership permission rules. Every
// function is pure so the policy is testable without any HTTP or storage
// layer. The rule set:
//
//	Action               Admin  Organizer(owner)  Organizer(other)  Guest
//	List events          all    own+invited       -                 invited only
//	View detail          yes    yes               yes               yes
//	Create event         yes    yes               yes               no
//	Edit/Delete event    yes    yes               no                no
//	Invite participant   yes    yes               no                no
//	Post notification    yes    yes               no                no
//	Add/assign task      yes    yes               no                no
//	Edit task            yes    yes (own event)   no                assignee only
package authz

import "eventmanagement/internal/domain"

// CanViewEvents reports whether the role may list events at all. Visibility
// scoping (all vs own+invited vs invited) is the resolver's job, not the
// policy's.
func CanViewEvents(role domain.Role) bool {
	return role == domain.RoleAdmin || role == domain.RoleOrganizer || role == domain.RoleGuest
}

// CanCreateEvent reports whether the role may create events.
func CanCreateEvent(role domain.Role) bool {
	return role != domain.RoleGuest
}

// CanEditEvent reports whether the caller may edit the event.
func CanEditEvent(role domain.Role, isOwner bool) bool {
	return role == domain.RoleAdmin || isOwner
}

// CanDeleteEvent reports whether the caller may delete the event.
func CanDeleteEvent(role domain.Role, isOwner bool) bool {
	return role == domain.RoleAdmin || isOwner
}

// CanManageParticipants reports whether the caller may invite participants to
// the event.
func CanManageParticipants(role domain.Role, isOwner bool) bool {
	return role == domain.RoleAdmin || isOwner
}

// CanPostNotification reports whether the caller may post a notification on
// the event. Guests never own events, so ownership alone is sufficient for
// non-admins.
func CanPostNotification(role domain.Role, isOwner bool) bool {
	if role != domain.RoleAdmin && role != domain.RoleOrganizer {
		return false
	}
	return role == domain.RoleAdmin || isOwner
}

// CanManageTasks reports whether the caller may add or assign tasks on the
// event.
func CanManageTasks(role domain.Role, isOwner bool) bool {
	return role == domain.RoleAdmin || isOwner
}

// CanEditTask reports whether the caller may update a task: admins, the owning
// event's organizer, and the task's assignee.
func CanEditTask(role domain.Role, isEventOwner, isAssignee bool) bool {
	return role == domain.RoleAdmin || isEventOwner || isAssignee
}
