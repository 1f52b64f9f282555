package notify

// Request DTOs for the notification endpoints. Field requiredness mirrors
// what each event needs to resolve its recipients; display names and copy
// are optional and rendered with fallbacks.

type SendNotificationInputDTO struct {
	RecipientID string            `json:"recipientId" binding:"required"`
	Title       string            `json:"title" binding:"required"`
	Body        string            `json:"body" binding:"required"`
	Data        map[string]string `json:"data"`
}

type MessageInputDTO struct {
	ChatID     string `json:"chatId" binding:"required"`
	SenderID   string `json:"senderId" binding:"required"`
	SenderName string `json:"senderName"`
	Text       string `json:"text"`
	MessageID  string `json:"messageId"`
}

type FriendRequestInputDTO struct {
	RecipientID string `json:"recipientId" binding:"required"`
	SenderID    string `json:"senderId" binding:"required"`
	SenderName  string `json:"senderName"`
}

type FriendAcceptInputDTO struct {
	RecipientID  string `json:"recipientId" binding:"required"`
	AcceptorID   string `json:"acceptorId" binding:"required"`
	AcceptorName string `json:"acceptorName"`
}

type NewPostInputDTO struct {
	PostID   string `json:"postId" binding:"required"`
	UserID   string `json:"userId" binding:"required"`
	UserName string `json:"userName"`
}

type PostCommentInputDTO struct {
	PostID      string `json:"postId" binding:"required"`
	CommentID   string `json:"commentId"`
	OwnerID     string `json:"ownerId" binding:"required"`
	ActorID     string `json:"actorId" binding:"required"`
	ActorName   string `json:"actorName"`
	CommentText string `json:"commentText"`
}

type PostReactionInputDTO struct {
	PostID       string `json:"postId" binding:"required"`
	OwnerID      string `json:"ownerId" binding:"required"`
	ActorID      string `json:"actorId" binding:"required"`
	ActorName    string `json:"actorName"`
	ReactionType string `json:"reactionType"`
}

type PostShareInputDTO struct {
	PostID    string `json:"postId" binding:"required"`
	OwnerID   string `json:"ownerId" binding:"required"`
	ActorID   string `json:"actorId" binding:"required"`
	ActorName string `json:"actorName"`
}

type CommentReplyInputDTO struct {
	PostID    string `json:"postId" binding:"required"`
	CommentID string `json:"commentId" binding:"required"`
	OwnerID   string `json:"ownerId" binding:"required"`
	ActorID   string `json:"actorId" binding:"required"`
	ActorName string `json:"actorName"`
	ReplyText string `json:"replyText"`
}

type CommentLikeInputDTO struct {
	PostID    string `json:"postId" binding:"required"`
	CommentID string `json:"commentId" binding:"required"`
	OwnerID   string `json:"ownerId" binding:"required"`
	ActorID   string `json:"actorId" binding:"required"`
	ActorName string `json:"actorName"`
}

type GroupInviteInputDTO struct {
	RecipientID string `json:"recipientId" binding:"required"`
	GroupID     string `json:"groupId" binding:"required"`
	InviterID   string `json:"inviterId" binding:"required"`
	GroupName   string `json:"groupName"`
	InviterName string `json:"inviterName"`
}

type MentionInputDTO struct {
	RecipientID   string `json:"recipientId" binding:"required"`
	MentionerID   string `json:"mentionerId" binding:"required"`
	MentionerName string `json:"mentionerName"`
	PostID        string `json:"postId"`
	CommentID     string `json:"commentId"`
	Type          string `json:"type"`
}

// Output DTOs

type DirectOutputDTO struct {
	Success     bool   `json:"success"`
	MessageID   string `json:"messageId"`
	RecipientID string `json:"recipientId"`
}

type MessageOutputDTO struct {
	Success    bool `json:"success"`
	Sent       int  `json:"sent"`
	Total      int  `json:"total"`
	Saved      int  `json:"saved"`
	MutedCount int  `json:"mutedCount"`
}

type BroadcastOutputDTO struct {
	Success bool `json:"success"`
	Sent    int  `json:"sent"`
	Total   int  `json:"total"`
}

// SingleOutputDTO covers the single-recipient social flows. ShortCircuited
// marks a self-action that produced no external calls; the handler renders
// it as {success:true, sent:0}.
type SingleOutputDTO struct {
	MessageID      string
	ShortCircuited bool
}
