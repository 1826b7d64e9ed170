// Package models defines the client-side shapes of the cat registry API:
// users, cats, the write payloads sent for them and the cached session.
//
// Read shapes (User, UserDetail, Cat) mirror server responses. Write shapes
// (RegisterRequest, LoginRequest, CatFields) carry only what the client is
// allowed to send; server-owned cat fields never appear in CatFields.
package models
