package http

// ListUsers godoc
// @Summary List users
// @Description List every registered blog reader
// @Tags Users
// @Produce json
// @Success 200 {object} object{success=bool,data=[]object{id=int,email=string,username=string,is_active=bool}}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /user [get]
func (h *UserHandler) ListUsersDoc() {}
