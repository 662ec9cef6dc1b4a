package bot

const (
	startManual = "<b>I keep track of your products' expiry dates.</b>\n\n" +
		"/add - track a new product\n" +
		"/all - list tracked products\n" +
		"/start - show this manual"

	accessDeniedReply = "Sorry, you are not allowed to use this bot 😓"

	promptName = "Please enter the product name:"
	promptDate = "Now pick the expiry date:"

	dialogExpiredReply = "Something went wrong. Please try again."

	savedReplyFmt = "Saved <b>%s</b> with expiry date %s."

	expiredAlertFmt = "❗ Product <b>%s</b> with expiry date %s has expired! ❗"
)
