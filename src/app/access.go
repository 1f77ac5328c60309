package app

// HasAccess reports whether the principal may read or contribute to the
// album: the owner, or anyone the album was shared with by email.
func HasAccess(p Principal, album *Album) bool {
	if p.UserID == album.OwnerID {
		return true
	}
	for _, email := range album.SharedWith {
		if email == p.Email {
			return true
		}
	}
	return false
}

// CanModify is owner-only: description edits, sharing and deletion.
func CanModify(p Principal, album *Album) bool {
	return p.UserID == album.OwnerID
}

// CanDeleteImage allows the album owner or the original uploader.
func CanDeleteImage(p Principal, album *Album, image *Image) bool {
	return p.UserID == album.OwnerID || p.UserID == image.UploadedBy
}
