package handlers

import (
	"net/http"
	"net/http/httptest"
	"strconv"

	"creatives/internal/origin"
)

// currentWorkspaceForTest resolves the workspace bound to the app's session
// cookie by replaying it through the session middleware.
func currentWorkspaceForTest(app *testApp) (*origin.Workspace, error) {
	var ws *origin.Workspace
	var err error
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range app.cookies {
		req.AddCookie(cookie)
	}
	sessionManager.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err = currentWorkspace(r)
	})).ServeHTTP(httptest.NewRecorder(), req)
	return ws, err
}

func jsonNumber(id int64) string {
	return strconv.FormatInt(id, 10)
}
