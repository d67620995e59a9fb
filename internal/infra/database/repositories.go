package database

import "github.com/xavierca1/mailmorph/internal/entity"

const (
	LeadsCollection      = "leads"
	UsersCollection      = "users"
	SentEmailsCollection = "sent_emails"
	RepliesCollection    = "replies"
	ActivityCollection   = "activity"
)

func NewLeadRepository(store BlobStore) *Collection[entity.Lead] {
	return NewCollection[entity.Lead](store, LeadsCollection)
}

func NewUserRepository(store BlobStore) *Collection[entity.User] {
	return NewCollection[entity.User](store, UsersCollection)
}

func NewSentEmailRepository(store BlobStore) *Collection[entity.SentEmail] {
	return NewCollection[entity.SentEmail](store, SentEmailsCollection)
}

func NewReplyRepository(store BlobStore) *Collection[entity.Reply] {
	return NewCollection[entity.Reply](store, RepliesCollection)
}

func NewActivityRepository(store BlobStore) *Collection[entity.ActivityEvent] {
	return NewCollection[entity.ActivityEvent](store, ActivityCollection)
}
