package trampoline

import "html/template"

// The callback page is transient: it either bounces straight into the
// app via the custom scheme or parks on a terminal failure message.
var (
	successPage = template.Must(template.New("success").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Signing you in</title></head>
<body>
<p>{{.Status}}</p>
<script>window.location.replace({{.DeepLink}});</script>
<noscript><a href="{{.DeepLink}}">Tap to return to the app</a></noscript>
</body>
</html>
`))

	failurePage = template.Must(template.New("failure").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Sign-in failed</title></head>
<body>
<p>{{.Status}}</p>
<p>Close this window and start the sign-in again from the app.</p>
</body>
</html>
`))
)
