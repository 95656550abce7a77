package cache

// Collection names one list-shaped fetch within an entity type's cache:
// the full listing or a per-topic listing.
type Collection string

// All is the collection holding the complete listing of an entity type.
const All Collection = "all"

// ForTopic names the collection of journals belonging to one topic.
func ForTopic(topicID string) Collection {
	return Collection("topic/" + topicID)
}

// Tag identifies an invalidation scope: either a whole collection (a LIST
// tag) or a single entity. Reads register the tags they depend on; mutations
// declare the tags they invalidate; the cache notifies exactly the
// subscribers of affected tags.
type Tag struct {
	Collection Collection
	ID         string
}

// ListTag tags a collection.
func ListTag(col Collection) Tag { return Tag{Collection: col} }

// EntityTag tags a single entity by id.
func EntityTag(id string) Tag { return Tag{ID: id} }
