package models

import (
	"fmt"

	"github.com/google/uuid"
)

type EventLevel string

const (
	LevelStatus  EventLevel = "status"
	LevelWarning EventLevel = "warning"
	LevelError   EventLevel = "error"
)

type EventKind string

const (
	EventGalleryCreated          EventKind = "gallery_created"
	EventImagesAdded             EventKind = "images_added"
	EventImageDeleted            EventKind = "image_deleted"
	EventImageNotFound           EventKind = "image_not_found"
	EventAllowListUpdated        EventKind = "allow_list_updated"
	EventProfilePictureUpdated   EventKind = "profile_picture_updated"
	EventProfilePictureRemoved   EventKind = "profile_picture_removed"
	EventProfilePictureCleared   EventKind = "profile_picture_cleared"
	EventInvalidReference        EventKind = "invalid_reference"
	EventNoChanges               EventKind = "no_changes"
	EventOrphanReferencesCleaned EventKind = "orphan_references_cleaned"
)

// Event - сообщение о результате операции, которое показывается пользователю после перерисовки формы
type Event struct {
	Kind    EventKind  `json:"kind"`
	Level   EventLevel `json:"level"`
	Message string     `json:"message"`
	Count   int        `json:"count,omitempty"`
	Ref     *uuid.UUID `json:"ref,omitempty"`
}

func GalleryCreated(t GalleryType) Event {
	return Event{
		Kind:    EventGalleryCreated,
		Level:   LevelStatus,
		Message: fmt.Sprintf("A new %s gallery has been created.", t),
	}
}

func ImagesAdded(n int) Event {
	return Event{
		Kind:    EventImagesAdded,
		Level:   LevelStatus,
		Message: fmt.Sprintf("Added %d new images.", n),
		Count:   n,
	}
}

func ImageDeleted(t GalleryType) Event {
	return Event{
		Kind:    EventImageDeleted,
		Level:   LevelStatus,
		Message: fmt.Sprintf("The image has been deleted from your %s gallery!", t),
	}
}

func ImageNotFound(fileID uuid.UUID) Event {
	return Event{
		Kind:    EventImageNotFound,
		Level:   LevelWarning,
		Message: "Image was not found in this gallery to delete.",
		Ref:     &fileID,
	}
}

func AllowListUpdated() Event {
	return Event{Kind: EventAllowListUpdated, Level: LevelStatus, Message: "Access list updated."}
}

func ProfilePictureUpdated() Event {
	return Event{Kind: EventProfilePictureUpdated, Level: LevelStatus, Message: "Profile picture updated successfully."}
}

func ProfilePictureRemoved() Event {
	return Event{Kind: EventProfilePictureRemoved, Level: LevelStatus, Message: "Profile picture removed."}
}

func ProfilePictureCleared() Event {
	return Event{
		Kind:    EventProfilePictureCleared,
		Level:   LevelStatus,
		Message: "Your profile picture has been removed because the image was deleted from your gallery.",
	}
}

func ProfilePictureUnchanged() Event {
	return Event{Kind: EventNoChanges, Level: LevelStatus, Message: "This image is already your profile picture."}
}

func InvalidReference(what string, id uuid.UUID) Event {
	return Event{
		Kind:    EventInvalidReference,
		Level:   LevelWarning,
		Message: fmt.Sprintf("Skipped unknown %s %s.", what, id),
		Ref:     &id,
	}
}

func NoChanges() Event {
	return Event{Kind: EventNoChanges, Level: LevelStatus, Message: "No changes were made to the gallery content itself."}
}

func OrphansCleaned(n int, title string) Event {
	return Event{
		Kind:    EventOrphanReferencesCleaned,
		Level:   LevelStatus,
		Message: fmt.Sprintf("Cleaned %d orphaned image references from gallery %q.", n, title),
		Count:   n,
	}
}

// HasKind используется в тестах и в HTTP-слое при выборе статуса ответа
func HasKind(events []Event, kind EventKind) bool {
	for _, e := range events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}
