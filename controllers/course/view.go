package controllers

import (
	"elearn/models"
	courseModels "elearn/models/course"
)

// CourseView is the outgoing course representation. Course metadata is
// always public; only ContentLink is access-controlled.
type CourseView struct {
	courseModels.Course
	ContentLink string                `json:"content_link,omitempty"`
	Modules     []courseModels.Module `json:"modules"`
}

// courseViewFor applies the content disclosure rule. An anonymous
// caller (nil user) is a normal input, never an error: the view
// degrades to the redacted form instead of rejecting the request.
//
// Rule, in order: free course -> full view for everyone; no
// authenticated user -> redacted; user without the course in their
// approved set -> redacted; otherwise full.
func courseViewFor(course courseModels.Course, modules []courseModels.Module, user *models.User) CourseView {
	view := CourseView{Course: course, Modules: modules}
	if modules == nil {
		view.Modules = []courseModels.Module{}
	}

	if course.IsFree {
		view.ContentLink = course.ContentLink
		return view
	}

	if user == nil || !user.HasCourseAccess(course.ID) {
		view.ContentLink = ""
		view.Course.ContentLink = ""
		return view
	}

	view.ContentLink = course.ContentLink
	return view
}
